package decoding

import (
	"fmt"
	"sort"
)

// Decoder turns the whitespace-free body of an armored contract into raw bytes
type Decoder interface {
	Name() string
	Decode(body string) ([]byte, error)
}

// DecoderFactory creates a decoder
type DecoderFactory func() Decoder

// DecoderRegistry manages the registration and creation of body decoders
type DecoderRegistry struct {
	factories map[string]DecoderFactory
}

// NewDecoderRegistry creates a new decoder registry
func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{
		factories: make(map[string]DecoderFactory),
	}
}

// Register adds a decoder factory to the registry
func (r *DecoderRegistry) Register(name string, factory DecoderFactory) error {
	if name == "" {
		return fmt.Errorf("decoder name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("decoder factory cannot be nil")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("decoder %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates a decoder by name
func (r *DecoderRegistry) Create(name string) (Decoder, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown decoder: %s", name)
	}
	return factory(), nil
}

// IsRegistered checks if a decoder with the given name is registered
func (r *DecoderRegistry) IsRegistered(name string) bool {
	_, exists := r.factories[name]
	return exists
}

// GetRegisteredNames returns all registered decoder names in sorted order
func (r *DecoderRegistry) GetRegisteredNames() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is a global registry instance with the built-in decoders pre-registered
var DefaultRegistry = NewDecoderRegistry()

// DefaultOrder is the order in which decoders are attempted when none is configured.
var DefaultOrder = []string{Z85Name, Base85Name, Ascii85Name, Base64Name}

func mustRegister(name string, factory DecoderFactory) {
	if err := DefaultRegistry.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register decoder %s: %v", name, err))
	}
}
