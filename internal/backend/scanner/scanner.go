package scanner

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jo-hoe/rgbexplorer/internal/backend/decoding"
)

const (
	ErrMsgNoArmor      = "no RGB armor block found"
	ErrMsgDecodeFailed = "Failed to decode"
)

// Scanner analyses armored RGB contracts and indexes inscription files.
type Scanner struct {
	chain *decoding.Chain
}

// NewScanner creates a scanner trying body decoders in the given chain order
func NewScanner(chain *decoding.Chain) *Scanner {
	if chain == nil {
		chain = decoding.NewDefaultChain()
	}
	return &Scanner{chain: chain}
}

// Analyze extracts header fields, an embedded image and printable strings from content.
func (s *Scanner) Analyze(content string) Result {
	if !hasArmor(content) {
		return Result{ID: "Unknown", Strings: []string{}, Valid: false, Error: ErrMsgNoArmor}
	}

	headChunk, bodyChunk := splitArmored(content)
	h := parseHeader(headChunk)
	result := Result{
		ID:            h.id,
		ConsignmentID: h.consignmentID,
		Schema:        h.schema,
		ContractType:  h.contractType,
		Checksum:      h.checksum,
		Version:       h.version,
		Strings:       []string{},
		Valid:         true,
	}

	body := cleanBody(bodyChunk)
	data, decoderName, err := s.chain.Decode(body)
	if err != nil {
		slog.Warn("Analyze: failed to decode contract body", "contract_id", h.id, "body_length", len(body), "error", err)
		result.Error = ErrMsgDecodeFailed
		return result
	}

	if image, ok := findImage(data); ok {
		result.ImageBase64 = image
	}
	result.Strings = extractStrings(data)

	slog.Debug("Analyze: contract analyzed",
		"contract_id", h.id,
		"decoder", decoderName,
		"decoded_size_bytes", len(data),
		"strings", len(result.Strings),
		"has_image", result.ImageBase64 != "")
	return result
}

// AnalyzeFile reads path and analyses its content. Read failures produce an invalid result.
func (s *Scanner) AnalyzeFile(path string) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{ID: "Unknown", Strings: []string{}, Valid: false, Error: err.Error()}
	}
	return s.Analyze(string(content))
}

// Scan indexes every file matching pattern, in lexical order, that carries an armor pair.
func (s *Scanner) Scan(pattern string) ([]RegistryEntry, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read glob pattern %s: %w", pattern, err)
	}
	sort.Strings(paths)

	entries := make([]RegistryEntry, 0)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Scan: skipping unreadable file", "path", path, "error", err)
			continue
		}
		text := string(content)
		if !hasArmor(text) {
			continue
		}

		headChunk, _ := splitArmored(text)
		h := parseHeader(headChunk)
		// the index prefers Contract, then the last Id line of any kind
		contractID := h.contract
		if contractID == "" {
			contractID = h.lastID
		}
		entry := RegistryEntry{
			RGBNumber:     len(entries),
			InscriptionID: path,
			ContractID:    contractID,
			SchemaID:      h.schema,
			ContractType:  h.contractType,
			Checksum:      h.checksum,
			Version:       h.version,
		}
		entries = append(entries, entry)
		slog.Info("Scan: inscription found", "rgb_number", entry.RGBNumber, "path", path)
	}
	return entries, nil
}

// WriteIndex writes entries as indented JSON to path.
func WriteIndex(path string, entries []RegistryEntry) error {
	if entries == nil {
		return errors.New("entries cannot be nil")
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index %s: %w", path, err)
	}
	return nil
}
