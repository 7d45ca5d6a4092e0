package scanner

import (
	"bytes"
	"encoding/base64"
)

const minStringLength = 4

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 'P', 'N', 'G'}
)

// findImage returns a data URL for the bytes starting at the first JPEG or PNG
// signature. The payload is passed through without decoding.
func findImage(data []byte) (string, bool) {
	for i := 0; i+4 < len(data); i++ {
		if bytes.HasPrefix(data[i:], jpegSignature) {
			return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data[i:]), true
		}
		if bytes.HasPrefix(data[i:], pngSignature) {
			return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data[i:]), true
		}
	}
	return "", false
}

// extractStrings collects runs of printable ASCII of at least minStringLength bytes.
func extractStrings(data []byte) []string {
	strs := make([]string, 0)
	start := -1
	for i, b := range data {
		if b >= 32 && b <= 126 {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minStringLength {
			strs = append(strs, string(data[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(data)-start >= minStringLength {
		strs = append(strs, string(data[start:]))
	}
	return strs
}
