package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

const defaultScanPattern = "*.html"

var scanOutput string

var scanCmd = &cobra.Command{
	Use:   "scan [pattern]",
	Short: "Index inscribed HTML files into a registry JSON",
	Long: `Reads every file matching the glob pattern (default "*.html"),
keeps those carrying an RGB armor block and writes their header metadata
as a registry array.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := defaultScanPattern
		if len(args) == 1 {
			pattern = args[0]
		}
		entries, err := runScan(pattern, scanOutput)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(fmt.Sprintf("indexed %s into %s", plural(len(entries), "inscription"), scanOutput)))
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print the analysis result of an armored contract as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := scanner.NewScanner(nil).AnalyzeFile(args[0])
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanOutput, "json", "index.json", "registry file to write")
}

func runScan(pattern, output string) ([]scanner.RegistryEntry, error) {
	entries, err := scanner.NewScanner(nil).Scan(pattern)
	if err != nil {
		return nil, err
	}
	if err := scanner.WriteIndex(output, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
