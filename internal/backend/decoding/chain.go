package decoding

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoDecoder is returned when no decoder in a chain accepts the body
var ErrNoDecoder = errors.New("no decoder accepted the contract body")

// Chain tries a sequence of decoders and returns the output of the first one that succeeds
type Chain struct {
	decoders []Decoder
}

// NewChain creates a chain from decoder names resolved against the registry
func NewChain(registry *DecoderRegistry, names []string) (*Chain, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}
	decoders := make([]Decoder, 0, len(names))
	for _, name := range names {
		decoder, err := registry.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to build decoder chain: %w", err)
		}
		decoders = append(decoders, decoder)
	}
	return &Chain{decoders: decoders}, nil
}

// NewDefaultChain creates a chain over DefaultOrder using DefaultRegistry
func NewDefaultChain() *Chain {
	chain, err := NewChain(DefaultRegistry, DefaultOrder)
	if err != nil {
		panic(err)
	}
	return chain
}

// Names returns the decoder names in attempt order
func (c *Chain) Names() []string {
	names := make([]string, len(c.decoders))
	for i, d := range c.decoders {
		names[i] = d.Name()
	}
	return names
}

// Decode returns the bytes of the first successful decoder together with its name
func (c *Chain) Decode(body string) ([]byte, string, error) {
	for _, decoder := range c.decoders {
		data, err := decoder.Decode(body)
		if err != nil {
			slog.Debug("decoder rejected body", "decoder", decoder.Name(), "body_length", len(body), "error", err)
			continue
		}
		slog.Debug("decoder accepted body", "decoder", decoder.Name(), "body_length", len(body), "output_size_bytes", len(data))
		return data, decoder.Name(), nil
	}
	return nil, "", ErrNoDecoder
}
