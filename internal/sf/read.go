package sf

import (
	"fmt"
	"os"
)

// ReadFile reads path and extracts its function records with the
// default HeaderScanner. The only error condition is an unreadable
// file; nothing about the bytes themselves can fail extraction.
func ReadFile(path string) (*ComponentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read component file: %w", err)
	}
	cf := ReadBytesWith(path, data, HeaderScanner{})
	return cf, nil
}

// ReadBytes extracts function records from an in-memory buffer with the
// default HeaderScanner. The result's Path is "<bytes>".
func ReadBytes(data []byte) *ComponentFile {
	return ReadBytesWith("<bytes>", data, HeaderScanner{})
}

// ReadBytesWith extracts function records from data using the given
// scanner, labeling the result with path. A buffer with no markers
// yields an empty Functions slice, not an error.
func ReadBytesWith(path string, data []byte, scanner Scanner) *ComponentFile {
	fns := scanner.Scan(data)
	if fns == nil {
		fns = []Function{}
	}
	return &ComponentFile{
		Path:      path,
		Functions: fns,
		Size:      len(data),
	}
}
