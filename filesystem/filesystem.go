// Package filesystem routes every file access through a swappable afero backend,
// the OS filesystem normally and an in-memory one in tests.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

func API() afero.Afero {
	return backend
}

func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// PartialSuffix marks a file that is still being written.
const PartialSuffix = ".part"

// WriteAtomic creates path by writing into path+PartialSuffix and renaming it once write succeeds.
// On failure the partial file is removed and path is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	fs := API()
	if err := fs.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	partial := path + PartialSuffix
	f, err := fs.Create(partial)
	if err != nil {
		return fmt.Errorf("create %s: %w", partial, err)
	}

	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = fs.Remove(partial)
		return err
	}

	if err := fs.Rename(partial, path); err != nil {
		return fmt.Errorf("rename %s: %w", partial, err)
	}
	return nil
}
