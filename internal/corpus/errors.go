package corpus

import (
	"errors"
	"fmt"
)

// Domain-level load error sentinels.
var (
	// ErrRootNotFound means the data root directory is missing.
	ErrRootNotFound = errors.New("data root not found")

	// ErrBadFilename means a file name is not <Product>_<LocationTag>.<ext>.
	ErrBadFilename = errors.New("file name must look like <Product>_<Location>.<ext>")

	// ErrColumnCount means a data row does not have exactly two columns.
	ErrColumnCount = errors.New("expected 2 columns (date, mentions)")
)

// ConfigurationError reports a data root that cannot be used. It halts the
// whole load.
type ConfigurationError struct {
	Root string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("folder %q not usable: %v", e.Root, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed content in a single file. The file is skipped
// and the rest of the load continues.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when the problem is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
