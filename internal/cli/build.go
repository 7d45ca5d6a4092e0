package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
	"github.com/jo-hoe/rgbexplorer/internal/inscription"
	"github.com/jo-hoe/rgbexplorer/internal/preview"
)

// SmallBlobLimit is the largest preview image an RGB21 smallblob can carry.
const SmallBlobLimit = 65535

type buildOptions struct {
	ImagePath    string
	ContractPath string
	OutputPath   string
	ContractID   string
	Fit          bool
}

var buildOpts buildOptions

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an inscription document from an image and a contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact, warning, err := buildInscription(buildOpts)
		if warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), FormatWarning(warning))
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess("Successfully generated "+artifact))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOpts.ImagePath, "image", "", "preview image (JPEG or PNG)")
	buildCmd.Flags().StringVar(&buildOpts.ContractPath, "contract", "", "armored contract file")
	buildCmd.Flags().StringVar(&buildOpts.OutputPath, "output", "", "output file (default derived from ticker and id)")
	buildCmd.Flags().StringVar(&buildOpts.ContractID, "contract-id", "", "contract id shown in the document (default read from the contract)")
	buildCmd.Flags().BoolVar(&buildOpts.Fit, "fit", false, "shrink the image to the smallblob limit instead of warning")
	_ = buildCmd.MarkFlagRequired("image")
	_ = buildCmd.MarkFlagRequired("contract")
}

// buildInscription writes the document and returns its path. The warning is
// set when the image exceeds the smallblob limit.
func buildInscription(opts buildOptions) (string, string, error) {
	image, err := os.ReadFile(opts.ImagePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image file: %w", err)
	}
	if opts.Fit {
		original := len(image)
		if image, _, err = preview.Fit(image, SmallBlobLimit); err != nil {
			return "", "", err
		}
		slog.Info("image fitted to smallblob limit", "from", humanize.Bytes(uint64(original)), "to", humanize.Bytes(uint64(len(image))))
	}
	warning := ""
	if len(image) > SmallBlobLimit {
		warning = fmt.Sprintf("Image size (%s, %d bytes) exceeds SmallBlob specification (%d bytes).",
			humanize.Bytes(uint64(len(image))), len(image), SmallBlobLimit)
	}

	contract, err := os.ReadFile(opts.ContractPath)
	if err != nil {
		return "", warning, fmt.Errorf("failed to read contract file: %w", err)
	}
	text := string(contract)

	in := inscription.Input{Text: text, Image: imageDataURL(image)}
	local := scanner.NewScanner(nil).Analyze(text)
	if snap := analyzer.Evaluate(text, &local, nil, nil); snap.State == analyzer.Resolved {
		in.ID = snap.ID
		in.Metadata = snap.Metadata
	}
	if opts.ContractID != "" {
		in.ID = opts.ContractID
		if in.Metadata != nil {
			in.Metadata.ID = opts.ContractID
		}
	}

	artifact, err := inscription.Generate(in)
	if err != nil {
		return "", warning, err
	}
	output := opts.OutputPath
	if output == "" {
		output = artifact.FileName
	}
	if err := writeArtifact(output, artifact); err != nil {
		return "", warning, err
	}
	return output, warning, nil
}

func imageDataURL(image []byte) string {
	return "data:" + preview.MimeType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
}

func writeArtifact(path string, artifact *inscription.Artifact) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write inscription %s: %w", path, err)
	}
	return nil
}
