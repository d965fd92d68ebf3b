// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path"
	"strings"
)

// FilesByExtension lists the regular files directly inside dir of fsys whose
// names end with the specified extension. It returns their paths relative to
// the root of fsys, in directory order.
func FilesByExtension(fsys fs.FS, dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(extension) || !strings.HasSuffix(name, extension) {
			continue
		}
		files = append(files, path.Join(dir, name))
	}
	return files, nil
}
