package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
	"github.com/teanganlp/teanga-go/internal/tokenizer"
)

// TokenizeResult holds tokenization results for JSON output.
type TokenizeResult struct {
	ID     string      `json:"id"`
	Tokens [][2]uint32 `json:"tokens"`
	Count  int         `json:"count"`
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize plain text into a corpus document",
		Long: `Tokenize a plain text file into a single-document corpus.

Token boundaries follow the whitespace-and-punctuation rule: runs of
letters and digits form one token, every other non-space character
forms a token of its own. Offsets are byte offsets into the UTF-8 text.

Pass "-" to read from standard input. Text output is the corpus in the
Teanga text format; JSON output lists the token spans.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTokenize(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	text, err := readInput(cmd, path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	spans := tokenizer.Tokenize(text)
	formatter.VerboseLog("Tokenized %d byte(s) into %d token(s)", len(text), len(spans))

	ctx := cmd.Context()
	c := corpus.NewInMemory()
	if err := c.AddLayerMeta(ctx, "text", "characters", "", ""); err != nil {
		return WrapExitError(ExitCommandError, "failed to build corpus", err)
	}
	if err := c.AddLayerMeta(ctx, "tokens", "span", "text", ""); err != nil {
		return WrapExitError(ExitCommandError, "failed to build corpus", err)
	}

	tokensArr := make(layer.Array, len(spans))
	for i, s := range spans {
		tokensArr[i] = layer.Array{layer.Int(s.Start), layer.Int(s.End)}
	}
	id, err := c.AddDoc(ctx, map[string]layer.Value{
		"text":   layer.String(text),
		"tokens": tokensArr,
	})
	if err != nil {
		_ = formatter.Error(ErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to add document", err)
	}

	if formatter.Format == "json" {
		result := TokenizeResult{ID: id, Tokens: make([][2]uint32, len(spans)), Count: len(spans)}
		for i, s := range spans {
			result.Tokens[i] = [2]uint32{s.Start, s.End}
		}
		return formatter.Success(result)
	}

	rendered, err := c.ToText(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render corpus", err)
	}
	_, err = fmt.Fprint(formatter.Writer, rendered)
	return err
}

// readInput reads a file argument, treating "-" as the command's stdin.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("input file not found: %s", path)
	}
	return string(data), nil
}
