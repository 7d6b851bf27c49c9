package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
)

// LoadError is a corpus file loading failure with a machine-readable
// code for CLI output.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadCorpusFile reads a Teanga corpus from a JSON file into an
// in-memory corpus. The file is a single object whose "_meta" field
// maps layer names to descriptors; every other top-level field is a
// document keyed by its identifier. Document order follows the file.
func LoadCorpusFile(ctx context.Context, path string) (*corpus.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("corpus file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeBadInput, Message: "failed to read corpus file", Err: err}
	}

	return LoadCorpus(ctx, data)
}

// LoadCorpus parses corpus JSON bytes into an in-memory corpus.
func LoadCorpus(ctx context.Context, data []byte) (*corpus.Corpus, error) {
	v, err := layer.UnmarshalValue(data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadInput, Message: "corpus file is not valid JSON", Err: err}
	}
	root, ok := v.(layer.Object)
	if !ok {
		return nil, &LoadError{Code: ErrCodeBadInput, Message: "corpus file is not a JSON object"}
	}

	metaVal, ok := root.Get("_meta")
	if !ok {
		return nil, &LoadError{Code: ErrCodeBadInput, Message: "corpus file has no _meta block"}
	}
	metaObj, ok := metaVal.(layer.Object)
	if !ok {
		return nil, &LoadError{Code: ErrCodeBadInput, Message: "_meta block is not a mapping"}
	}

	c := corpus.NewInMemory()
	if err := registerMeta(ctx, c, metaObj); err != nil {
		return nil, err
	}

	for _, field := range root {
		if field.Key == "_meta" {
			continue
		}
		docObj, ok := field.Val.(layer.Object)
		if !ok {
			return nil, &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("document %q is not a mapping", field.Key)}
		}
		layers := make(map[string]layer.Value, len(docObj))
		for _, lf := range docObj {
			layers[lf.Key] = lf.Val
		}
		if err := c.AddDocWithID(ctx, field.Key, layers); err != nil {
			return nil, &LoadError{
				Code:    ErrorCode(err),
				Message: fmt.Sprintf("document %q is invalid", field.Key),
				Err:     err,
			}
		}
	}

	return c, nil
}

// registerMeta adds every descriptor from the _meta block. Descriptors
// may reference bases declared later in the file, so unsatisfied
// entries are retried until a pass makes no progress.
func registerMeta(ctx context.Context, c *corpus.Corpus, metaObj layer.Object) error {
	type pendingDesc struct {
		name string
		desc layer.LayerDesc
	}

	pending := make([]pendingDesc, 0, len(metaObj))
	for _, field := range metaObj {
		descObj, ok := field.Val.(layer.Object)
		if !ok {
			return &LoadError{Code: ErrCodeBadInput, Message: fmt.Sprintf("descriptor for layer %q is not a mapping", field.Key)}
		}
		desc, err := layer.DecodeDesc(descObj)
		if err != nil {
			return &LoadError{
				Code:    ErrorCode(err),
				Message: fmt.Sprintf("descriptor for layer %q is invalid", field.Key),
				Err:     err,
			}
		}
		pending = append(pending, pendingDesc{name: field.Key, desc: desc})
	}

	for len(pending) > 0 {
		var stuck []pendingDesc
		var lastErr error
		for _, p := range pending {
			if err := c.AddLayerDesc(ctx, p.name, p.desc); err != nil {
				if corpus.IsSchemaError(err) {
					stuck = append(stuck, p)
					lastErr = fmt.Errorf("layer %q: %w", p.name, err)
					continue
				}
				return &LoadError{Code: ErrorCode(err), Message: fmt.Sprintf("layer %q is invalid", p.name), Err: err}
			}
		}
		if len(stuck) == len(pending) {
			return &LoadError{Code: ErrorCode(lastErr), Message: "corpus schema is invalid", Err: lastErr}
		}
		pending = stuck
	}

	return nil
}
