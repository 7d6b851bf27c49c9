package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/store"
)

// ConvertResult holds conversion results for JSON output.
type ConvertResult struct {
	Layers    int    `json:"layers"`
	Documents int    `json:"documents"`
	Output    string `json:"output,omitempty"`
	Database  string `json:"database,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var outputPath string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "convert <corpus.json>",
		Short: "Convert a JSON corpus to the Teanga text format",
		Long: `Convert a Teanga corpus from its JSON form to the text format.

The input file is a single JSON object: a "_meta" field mapping layer
names to descriptors, then one field per document keyed by its
identifier. Documents and layers keep the order they have in the file.

With --output the rendered text goes to a file instead of stdout.
With --db the corpus is also written to a SQLite database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], outputPath, dbPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write rendered text to a file")
	cmd.Flags().StringVar(&dbPath, "db", "", "also persist the corpus to a SQLite database")

	return cmd
}

func runConvert(opts *RootOptions, inputPath, outputPath, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := cmd.Context()
	c, err := LoadCorpusFile(ctx, inputPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	info, err := c.Info(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to inspect corpus", err)
	}
	formatter.VerboseLog("Loaded %d layer(s), %d document(s) from %s",
		info.LayerCount, info.DocumentCount, inputPath)

	if dbPath != "" {
		if err := persistCorpus(ctx, c, dbPath); err != nil {
			_ = formatter.Error(ErrCodeWriteError, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write database", err)
		}
		formatter.VerboseLog("Wrote corpus to %s", dbPath)
	}

	rendered, err := c.ToText(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render corpus", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteError, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(ConvertResult{
			Layers:    info.LayerCount,
			Documents: info.DocumentCount,
			Output:    outputPath,
			Database:  dbPath,
		})
	}

	if outputPath != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %d document(s) to %s\n", info.DocumentCount, outputPath)
		return nil
	}
	_, err = fmt.Fprint(formatter.Writer, rendered)
	return err
}

// persistCorpus copies a loaded corpus into a SQLite store, preserving
// layer registration order and document order.
func persistCorpus(ctx context.Context, c *corpus.Corpus, dbPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	target := corpus.New(st)

	meta, err := c.Meta(ctx)
	if err != nil {
		return err
	}
	for _, entry := range meta {
		err := target.AddLayerDesc(ctx, entry.Name, entry.Desc)
		if err != nil && !corpus.IsDuplicateLayer(err) {
			return err
		}
	}

	ids, err := c.DocIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		doc, err := c.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		// Write the typed document directly so tagged variants survive
		// without a round trip through shape inference
		if err := st.PutDoc(ctx, id, doc); err != nil {
			return err
		}
	}
	return nil
}

// outputLoadError renders a LoadError and maps it to an exit code.
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Error(), nil)
		if loadErr.Code == ErrCodeNotFound {
			return WrapExitError(ExitCommandError, loadErr.Message, loadErr.Err)
		}
		return WrapExitError(ExitFailure, loadErr.Message, loadErr.Err)
	}
	_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
	return WrapExitError(ExitFailure, "failed to load corpus", err)
}
