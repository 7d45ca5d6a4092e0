package inscription

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrPayloadNotFound = errors.New("no embedded contract found in document")

// Extract returns the contract text embedded by Generate, byte for byte.
func Extract(document []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(document))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", ErrPayloadNotFound
			}
			return "", fmt.Errorf("failed to tokenize document: %w", z.Err())
		case html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Script || attr(tok, "id") != PayloadID {
				continue
			}
			// raw text of the script element, without newline normalisation
			var raw []byte
			if z.Next() == html.TextToken {
				raw = z.Raw()
			}
			return trimPayload(string(raw))
		}
	}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func trimPayload(raw string) (string, error) {
	if !strings.HasPrefix(raw, payloadPrefix) || !strings.HasSuffix(raw, payloadSuffix) || len(raw) < len(payloadPrefix)+len(payloadSuffix) {
		return "", fmt.Errorf("embedded contract has an unexpected layout")
	}
	return raw[len(payloadPrefix) : len(raw)-len(payloadSuffix)], nil
}
