package bank

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed data/default.json
var defaultBankJSON []byte

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the embedded sample bank. It is parsed once and shared;
// callers must treat it as read-only.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		defaultBank, defaultErr = Parse(defaultBankJSON, FormatJSON)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded bank: %w", defaultErr)
		}
	})
	return defaultBank, defaultErr
}

// Open loads the bank at path, or the embedded bank when path is empty.
func Open(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}
