package cli

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/rgbexplorer/internal/registry"
)

const mockCreatedAt = "2024-05-21T10:00:00Z"

var mockDescriptions = []string{
	"A unique digital asset representing an ancient artifact.",
	"Standard fungible token for utility access.",
	"A collectible trading card series, 1st edition.",
	"Membership token for the RGB Vanguard.",
	"Digital land deed on the Bitcoin Network.",
}

var (
	mockCount  int
	mockOutput string
	mockSeed   uint64
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Generate a random mock registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mockCount < 0 {
			return fmt.Errorf("count must not be negative")
		}
		seed := mockSeed
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}
		records := generateMock(mockCount, rand.New(rand.NewPCG(seed, seed)))
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode mock registry: %w", err)
		}
		if err := os.WriteFile(mockOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write mock registry %s: %w", mockOutput, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(fmt.Sprintf("Generated %s in %s", plural(len(records), "mock inscription"), mockOutput)))
		return nil
	},
}

func init() {
	mockCmd.Flags().IntVar(&mockCount, "count", 20, "number of records")
	mockCmd.Flags().StringVar(&mockOutput, "json", "index.json", "registry file to write")
	mockCmd.Flags().Uint64Var(&mockSeed, "seed", 0, "random seed (default random)")
}

// generateMock returns count records sorted by rgb_number descending. Every
// third record is fungible, the rest are unique digital assets.
func generateMock(count int, rng *rand.Rand) []registry.AssetRecord {
	records := make([]registry.AssetRecord, 0, count)
	for i := 0; i < count; i++ {
		contractType := "RGB21 (UDA)"
		var supply int64 = 1
		if i%3 == 0 {
			contractType = "RGB20 (Fungible)"
			supply = 1000000
		}
		records = append(records, registry.AssetRecord{
			RGBNumber:     i,
			InscriptionID: mockHexID(rng) + "i0",
			ContractType:  contractType,
			Description:   mockDescriptions[rng.IntN(len(mockDescriptions))],
			Supply:        supply,
			CreatedAt:     mockCreatedAt,
		})
	}
	slices.Reverse(records)
	return records
}

func mockHexID(rng *rand.Rand) string {
	const digits = "0123456789abcdef"
	var b strings.Builder
	b.Grow(64)
	for range 64 {
		b.WriteByte(digits[rng.IntN(len(digits))])
	}
	return b.String()
}
