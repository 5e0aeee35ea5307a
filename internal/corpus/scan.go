package corpus

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the tabular file extensions the scanner picks up.
var Extensions = []string{".csv", ".xlsx"}

// Entry is one data file found under the root.
type Entry struct {
	Folder string // Topic sub-directory name
	Path   string
}

// Scan walks root's topic sub-directories and yields every data file.
// The root is checked eagerly; a missing root returns a *ConfigurationError.
// Files are listed lazily as the sequence is consumed. A sub-directory that
// cannot be read is yielded as an error and the walk moves on.
func Scan(root string) (iter.Seq2[Entry, error], error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Root: root, Err: ErrRootNotFound}
		}
		return nil, &ConfigurationError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Root: root, Err: fmt.Errorf("%w: not a directory", ErrRootNotFound)}
	}

	folders, err := os.ReadDir(root)
	if err != nil {
		return nil, &ConfigurationError{Root: root, Err: err}
	}

	return func(yield func(Entry, error) bool) {
		for _, folder := range folders {
			if !folder.IsDir() {
				continue
			}

			folderPath := filepath.Join(root, folder.Name())
			files, err := os.ReadDir(folderPath)
			if err != nil {
				if !yield(Entry{Folder: folder.Name(), Path: folderPath}, err) {
					return
				}
				continue
			}

			for _, file := range files {
				if file.IsDir() || !IsDataFile(file.Name()) {
					continue
				}
				entry := Entry{Folder: folder.Name(), Path: filepath.Join(folderPath, file.Name())}
				if !yield(entry, nil) {
					return
				}
			}
		}
	}, nil
}

// IsDataFile reports whether name has a recognised extension.
func IsDataFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
