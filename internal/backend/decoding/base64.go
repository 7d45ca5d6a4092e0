package decoding

import (
	"encoding/base64"
	"fmt"
)

const Base64Name = "base64"

type base64Decoder struct{}

func (base64Decoder) Name() string { return Base64Name }

func (base64Decoder) Decode(body string) ([]byte, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("base64 input is empty")
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}

func init() {
	mustRegister(Base64Name, func() Decoder { return base64Decoder{} })
}
