package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jo-hoe/rgbexplorer/internal/analyzer"
	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
	"github.com/jo-hoe/rgbexplorer/internal/inscription"
)

var (
	watchServer string
	watchOut    string
	watchQuiet  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyse a contract file whenever it changes",
	Long: `Watches a contract file and analyses it each time it settles after an edit.
Changes arriving within the quiet period are coalesced and results of
superseded edits are discarded. With --out the inscription document is
regenerated after every valid analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout(), args[0])
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchServer, "server", "", "analysis server URL (default analyse locally)")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "directory to regenerate the inscription into")
	watchCmd.Flags().DurationVar(&watchQuiet, "quiet", analyzer.DefaultQuietPeriod, "quiet period before an edit is analysed")
}

func runWatch(ctx context.Context, out io.Writer, path string) error {
	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			slog.Error("failed to close file watcher", "error", cerr)
		}
	}()
	// editors replace files on save, so the directory is watched instead of the file
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	session := analyzer.NewSession(watchAnalyzer(),
		analyzer.WithQuietPeriod(watchQuiet),
		analyzer.WithOnCommit(func(snap analyzer.Snapshot) {
			printSnapshot(out, snap)
			if watchOut == "" {
				return
			}
			if file, err := regenerate(watchOut, snap); err != nil {
				fmt.Fprintln(out, FormatError(err.Error()))
			} else if file != "" {
				fmt.Fprintln(out, FormatSuccess("Regenerated "+file))
			}
		}))
	defer session.Cancel()

	submit := func() {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("watch: failed to read contract", "path", path, "error", err)
			return
		}
		session.Submit(string(content))
	}

	fmt.Fprintln(out, FormatMuted("watching "+path+" (ctrl+c to stop)"))
	submit()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("watch: contract changed", "path", path, "op", event.Op.String())
				submit()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: file watcher error", "error", err)
		}
	}
}

func watchAnalyzer() analyzer.Analyzer {
	if watchServer != "" {
		return analyzer.NewHTTPClient(watchServer, analyzer.DefaultTimeout)
	}
	s := scanner.NewScanner(nil)
	return analyzer.AnalyzerFunc(func(_ context.Context, text string) (*scanner.Result, error) {
		result := s.Analyze(text)
		return &result, nil
	})
}

// printSnapshot writes a short listing of a committed analysis.
func printSnapshot(w io.Writer, snap analyzer.Snapshot) {
	switch snap.State {
	case analyzer.Resolved:
		fmt.Fprintln(w, FormatSuccess(snap.Message))
	case analyzer.Failed:
		fmt.Fprintln(w, FormatError(snap.Message))
		return
	default:
		fmt.Fprintln(w, FormatMuted(snap.State.String()))
		return
	}

	rows := []KeyValue{{Key: "Contract ID", Value: snap.ID}}
	if meta := snap.Metadata; meta != nil {
		rows = append(rows,
			KeyValue{Key: "Ticker", Value: meta.Ticker},
			KeyValue{Key: "Name", Value: meta.Name},
			KeyValue{Key: "Issuer", Value: meta.Issuer},
			KeyValue{Key: "Type", Value: meta.Type},
			KeyValue{Key: "Supply", Value: meta.Supply},
		)
	}
	image := "none"
	if snap.Image != "" {
		image = "embedded"
	}
	rows = append(rows, KeyValue{Key: "Image", Value: image})
	fmt.Fprintln(w, FormatRows(rows))
}

// regenerate writes the inscription for a resolved snapshot into dir and
// returns the written path. Other states write nothing.
func regenerate(dir string, snap analyzer.Snapshot) (string, error) {
	if snap.State != analyzer.Resolved {
		return "", nil
	}
	artifact, err := inscription.Generate(inscription.Input{
		Text:     snap.Input,
		ID:       snap.ID,
		Image:    snap.Image,
		Metadata: snap.Metadata,
	})
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, artifact.FileName)
	if err := writeArtifact(path, artifact); err != nil {
		return "", err
	}
	return path, nil
}
