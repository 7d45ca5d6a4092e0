package decoding

import (
	"fmt"

	"github.com/tilinna/z85"
)

const Z85Name = "z85"

type z85Decoder struct{}

func (z85Decoder) Name() string { return Z85Name }

func (z85Decoder) Decode(body string) ([]byte, error) {
	if len(body) == 0 || len(body)%5 != 0 {
		return nil, fmt.Errorf("z85 input length %d is not a multiple of 5", len(body))
	}
	dst := make([]byte, z85.DecodedLen(len(body)))
	n, err := z85.Decode(dst, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode z85: %w", err)
	}
	return dst[:n], nil
}

func init() {
	mustRegister(Z85Name, func() Decoder { return z85Decoder{} })
}
