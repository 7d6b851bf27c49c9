package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teanganlp/teanga-go/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool                     `json:"valid"`
	Violations []schema.ValidationError `json:"violations,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-file>",
		Short: "Validate a corpus schema",
		Long: `Validate the layer schema of a corpus file.

The file may be a bare layer-name mapping (YAML or JSON) or a full
corpus file, in which case its _meta block is validated. Checks layer
types, data refinements, base references, and base cycles.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("schema file not found: %s", path), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("schema file not found: %s", path))
	}

	violations, err := schema.ValidateFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load schema", err)
	}

	if len(violations) > 0 {
		return outputValidationErrors(formatter, violations)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "✓ Schema valid")
	return nil
}

// outputValidationErrors outputs schema violations and signals failure.
func outputValidationErrors(formatter *OutputFormatter, violations []schema.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Violations: violations},
			Error: &CLIError{
				Code:    "SCHEMA_INVALID",
				Message: violations[0].Error(),
			},
		}
		if err := writeIndentedJSON(formatter, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("schema validation failed with %d violation(s)", len(violations)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Schema invalid")
	fmt.Fprintln(formatter.Writer)
	for _, v := range violations {
		if v.Path != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", v.Path, v.Message)
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s\n", v.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("schema validation failed with %d violation(s)", len(violations)))
}

func writeIndentedJSON(formatter *OutputFormatter, response CLIResponse) error {
	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}
