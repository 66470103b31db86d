package ops

import (
	"os"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/hpungsan/aplsf/internal/sf"
)

// ExtractInput contains parameters for the Extract operation.
type ExtractInput struct {
	// Path of the .sf file to read.
	Path string

	// Heuristic selects the del-to-del fallback scanner instead of the
	// length-prefix header scanner. For dumps with damaged or missing
	// sub-object headers.
	Heuristic bool
}

// FunctionInfo is the wire shape of one extracted function.
type FunctionInfo struct {
	Name   string `json:"name"`
	Arity  string `json:"arity"`
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// ExtractOutput contains the result of the Extract operation.
type ExtractOutput struct {
	Path      string         `json:"path"`
	Size      int            `json:"size"`
	Functions []FunctionInfo `json:"functions"`
}

// Extract reads one component file and returns its decoded functions
// without touching the catalog. Binary anomalies never fail the
// operation; only an unreadable or oversized input does.
func Extract(cfg *config.Config, input ExtractInput) (*ExtractOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	data, err := readSource(cfg, input.Path)
	if err != nil {
		return nil, err
	}

	cf := sf.ReadBytesWith(input.Path, data, scannerFor(input.Heuristic))
	return &ExtractOutput{
		Path:      cf.Path,
		Size:      cf.Size,
		Functions: functionInfos(cf.Functions),
	}, nil
}

// scannerFor picks the boundary-detection strategy.
func scannerFor(heuristic bool) sf.Scanner {
	if heuristic {
		return sf.DelScanner{}
	}
	return sf.HeaderScanner{}
}

// readSource reads an input file, enforcing the configured size cap.
func readSource(cfg *config.Config, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewSourceUnreadable(path, err)
	}
	if cfg != nil && cfg.MaxFileBytes > 0 && info.Size() > cfg.MaxFileBytes {
		return nil, errors.NewFileTooLarge(path, cfg.MaxFileBytes, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceUnreadable(path, err)
	}
	return data, nil
}

func functionInfos(fns []sf.Function) []FunctionInfo {
	infos := make([]FunctionInfo, len(fns))
	for i, fn := range fns {
		infos[i] = FunctionInfo{
			Name:   fn.Name,
			Arity:  fn.Arity.String(),
			Offset: fn.Offset,
			Text:   fn.Text,
		}
	}
	return infos
}
