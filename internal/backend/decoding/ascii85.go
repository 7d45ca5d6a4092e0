package decoding

import (
	"encoding/ascii85"
	"fmt"
	"strings"
)

const Ascii85Name = "ascii85"

type ascii85Decoder struct{}

func (ascii85Decoder) Name() string { return Ascii85Name }

func (ascii85Decoder) Decode(body string) ([]byte, error) {
	body = strings.TrimSuffix(strings.TrimPrefix(body, "<~"), "~>")
	if len(body) == 0 {
		return nil, fmt.Errorf("ascii85 input is empty")
	}
	// 'z' expands a single character to four zero bytes
	dst := make([]byte, 4*len(body))
	n, consumed, err := ascii85.Decode(dst, []byte(body), true)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ascii85: %w", err)
	}
	if consumed != len(body) {
		return nil, fmt.Errorf("ascii85 decoder stopped at offset %d of %d", consumed, len(body))
	}
	return dst[:n], nil
}

func init() {
	mustRegister(Ascii85Name, func() Decoder { return ascii85Decoder{} })
}
