package site

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// writeFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return replaceFile(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// copyFile copies src to dst byte for byte, keeping its permission bits and
// modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	err = replaceFile(dst, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		return err
	}

	// Access times are not portable; the source mtime stands in for both.
	return errors.WithStack(os.Chtimes(dst, info.ModTime(), info.ModTime()))
}

func replaceFile(path string, perm fs.FileMode, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WithStack(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WithStack(err)
	}
	committed = true
	return nil
}

// ensureDir creates dir and its parents. It is safe to call concurrently
// for overlapping paths.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil && !os.IsExist(err) {
		return errors.WithStack(err)
	}
	return nil
}
