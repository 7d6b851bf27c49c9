package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/store"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "info <corpus>",
		Short: "Summarize a corpus",
		Long: `Summarize a corpus: its layers and document identifiers.

The argument is a corpus JSON file, or a SQLite database created by
"convert --db" when --db is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], fromDB, cmd)
		},
	}

	cmd.Flags().BoolVar(&fromDB, "db", false, "treat the argument as a SQLite corpus database")

	return cmd
}

func runInfo(opts *RootOptions, path string, fromDB bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := cmd.Context()

	var c *corpus.Corpus
	if fromDB {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
		}
		st, err := store.Open(path)
		if err != nil {
			_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		c = corpus.New(st)
	} else {
		loaded, err := LoadCorpusFile(ctx, path)
		if err != nil {
			return outputLoadError(formatter, err)
		}
		c = loaded
	}

	info, err := c.Info(ctx)
	if err != nil {
		_ = formatter.Error(ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to inspect corpus", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}

	fmt.Fprintf(formatter.Writer, "Layers: %d\n", info.LayerCount)
	if len(info.LayerNames) > 0 {
		fmt.Fprintf(formatter.Writer, "  %s\n", strings.Join(info.LayerNames, ", "))
	}
	fmt.Fprintf(formatter.Writer, "Documents: %d\n", info.DocumentCount)
	for _, id := range info.DocumentIDs {
		fmt.Fprintf(formatter.Writer, "  %s\n", id)
	}
	return nil
}
