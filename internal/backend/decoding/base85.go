package decoding

import (
	"fmt"
	"math"
)

const Base85Name = "base85"

const rfc1924Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{|}~"

var rfc1924Lookup = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = 0xff
	}
	for i := 0; i < len(rfc1924Alphabet); i++ {
		table[rfc1924Alphabet[i]] = byte(i)
	}
	return table
}()

// base85Decoder decodes the RFC 1924 alphabet. A trailing partial group of n
// characters is padded with the highest digit and yields n-1 bytes.
type base85Decoder struct{}

func (base85Decoder) Name() string { return Base85Name }

func (base85Decoder) Decode(body string) ([]byte, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("base85 input is empty")
	}
	out := make([]byte, 0, len(body)*4/5+4)
	var acc uint64
	count := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		v := rfc1924Lookup[c]
		if v == 0xff {
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				continue
			}
			return nil, fmt.Errorf("invalid base85 character %q at offset %d", c, i)
		}
		acc = acc*85 + uint64(v)
		count++
		if count == 5 {
			if acc > math.MaxUint32 {
				return nil, fmt.Errorf("base85 group overflow at offset %d", i)
			}
			out = append(out, byte(acc>>24), byte(acc>>16), byte(acc>>8), byte(acc))
			acc = 0
			count = 0
		}
	}
	if count > 0 {
		val := acc
		for i := 0; i < 5-count; i++ {
			val = val*85 + 84
		}
		if val > math.MaxUint32 {
			return nil, fmt.Errorf("base85 trailing group overflow")
		}
		group := []byte{byte(val >> 24), byte(val >> 16), byte(val >> 8), byte(val)}
		out = append(out, group[:count-1]...)
	}
	return out, nil
}

func init() {
	mustRegister(Base85Name, func() Decoder { return base85Decoder{} })
}
