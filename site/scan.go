package site

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ZacxDev/go-wiki-site/logfields"
)

// Entry is a regular file found in the pages tree.
type Entry struct {
	// Path is slash-separated and relative to the tree root.
	Path    string
	ModTime time.Time
}

// Snapshot maps slash-separated output paths to their modification times.
type Snapshot map[string]time.Time

// ScanSource lists every file below root in lexical order. Entries that
// cannot be stat'ed are logged and left out.
func ScanSource(root string, logger *slog.Logger) ([]Entry, error) {
	var entries []Entry
	fsys := os.DirFS(root)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			logger.Error("Skipping unreadable path", logfields.Path(p), logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// fs.Stat follows symlinks so linked files are mirrored by content.
		info, err := fs.Stat(fsys, p)
		if err != nil {
			logger.Error("Skipping unreadable file", logfields.Path(p), logfields.Error(err))
			return nil
		}
		if info.IsDir() {
			return nil
		}
		entries = append(entries, Entry{Path: p, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", root)
	}
	return entries, nil
}

// ScanOutput snapshots the output tree. A missing root is an empty tree.
// Files whose info cannot be read are left out, so they count as missing.
func ScanOutput(root string, logger *slog.Logger) (Snapshot, error) {
	snap := Snapshot{}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return snap, nil
	}
	err := fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Debug("Treating unreadable output as missing", logfields.Path(p), logfields.Error(err))
			return nil
		}
		snap[p] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", root)
	}
	return snap, nil
}
