package main

import "github.com/jo-hoe/rgbexplorer/internal/cli"

func main() {
	cli.Execute()
}
