// Package workdir manages the scoped working directories owned by
// pipeline jobs. Every job acquires its own uniquely named directory,
// works inside it through a rooted filesystem handle, and releases it
// unconditionally when the job reaches a terminal state.
package workdir

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
)

// Manager hands out job-scoped working directories under a single
// root. Concurrent jobs receive disjoint directories.
type Manager struct {
	root string
	fs   billy.Filesystem
	log  *zap.SugaredLogger
}

// NewManager returns a Manager rooted at the given OS directory. An
// empty root falls back to the system temp directory.
func NewManager(root string) *Manager {
	if root == "" {
		root = os.TempDir()
	}
	return &Manager{
		root: root,
		fs:   osfs.New(root),
		log:  logger.ComponentLogger("workdir"),
	}
}

// NewManagerWithFS returns a Manager over an injected filesystem.
// Tests use this with an in-memory filesystem to stay hermetic.
func NewManagerWithFS(fs billy.Filesystem) *Manager {
	return &Manager{
		fs:  fs,
		log: logger.ComponentLogger("workdir"),
	}
}

// Workdir is one job's exclusively owned working directory.
type Workdir struct {
	fs      billy.Filesystem
	name    string
	osPath  string
	log     *zap.SugaredLogger
	release func() error
}

// Acquire creates a fresh working directory for jobID. The returned
// Workdir must be released when the job ends, success or failure.
func (m *Manager) Acquire(jobID string) (*Workdir, error) {
	name := fmt.Sprintf("strive-%s-%s", jobID, uuid.NewString()[:8])
	if err := m.fs.MkdirAll(name, config.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create working directory %s", name)
	}
	scoped, err := m.fs.Chroot(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scope working directory %s", name)
	}

	m.log.Debugw("acquired working directory",
		logger.FieldJobID, jobID,
		logger.FieldPath, name,
	)

	return &Workdir{
		fs:     scoped,
		name:   name,
		osPath: filepath.Join(m.root, name),
		log:    m.log,
		release: func() error {
			return util.RemoveAll(m.fs, name)
		},
	}, nil
}

// FS exposes the directory as a rooted filesystem handle.
func (w *Workdir) FS() billy.Filesystem {
	return w.fs
}

// Path returns the absolute OS path of the working directory. Only
// meaningful for OS-backed managers; in-memory managers return a
// placeholder path.
func (w *Workdir) Path() string {
	return w.osPath
}

// OSPath resolves a path relative to the working directory into an
// absolute OS path.
func (w *Workdir) OSPath(rel string) string {
	return filepath.Join(w.osPath, filepath.FromSlash(rel))
}

// Release deletes the working directory and everything in it. Safe to
// call more than once.
func (w *Workdir) Release() {
	if w.release == nil {
		return
	}
	if err := w.release(); err != nil {
		w.log.Warnw("failed to release working directory",
			logger.FieldPath, w.name,
			logger.FieldError, err,
		)
	}
	w.release = nil
}

// ListNonHidden walks the working directory and returns the relative
// paths of every file whose path contains no hidden segment. Dot
// directories are pruned without descending.
func (w *Workdir) ListNonHidden(root string) ([]string, error) {
	if root == "" {
		root = "/"
	}
	var files []string
	err := util.Walk(w.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			if p != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		files = append(files, relativeTo(root, p))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to enumerate %s", root)
	}
	return files, nil
}

// ReadFile reads a file relative to the working directory.
func (w *Workdir) ReadFile(rel string) ([]byte, error) {
	data, err := util.ReadFile(w.fs, rel)
	if err != nil {
		return nil, errors.NewFileReadError(err, rel)
	}
	return data, nil
}

// WriteFileAtomic writes data to rel through a temp file and rename,
// creating parent directories as needed. A reader never observes a
// partially written file.
func (w *Workdir) WriteFileAtomic(rel string, data []byte) error {
	dir := path.Dir(rel)
	if dir != "." && dir != "/" {
		if err := w.fs.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
			return errors.Wrapf(err, "failed to create parent directory for %s", rel)
		}
	}

	tmp, err := util.TempFile(w.fs, dir, ".strive-write-")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", rel)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", rel)
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to flush %s", rel)
	}
	if err := w.fs.Rename(tmpName, rel); err != nil {
		w.fs.Remove(tmpName)
		return errors.Wrapf(err, "failed to move %s into place", rel)
	}
	return nil
}

// CopyNonHidden recursively copies every non-hidden file under srcDir
// into dstDir, preserving relative structure. Regular files directly
// under srcDir copy the same as nested ones.
func (w *Workdir) CopyNonHidden(srcDir, dstDir string) error {
	files, err := w.ListNonHidden(srcDir)
	if err != nil {
		return err
	}
	for _, rel := range files {
		data, err := util.ReadFile(w.fs, path.Join(srcDir, rel))
		if err != nil {
			return errors.Wrapf(err, "failed to read %s during copy", rel)
		}
		target := path.Join(dstDir, rel)
		if dir := path.Dir(target); dir != "." {
			if err := w.fs.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
				return errors.Wrapf(err, "failed to create %s during copy", dir)
			}
		}
		if err := util.WriteFile(w.fs, target, data, config.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s during copy", target)
		}
	}
	return nil
}

// relativeTo strips the walk root from a returned path and normalizes
// away any leading separator.
func relativeTo(root, p string) string {
	if root != "/" {
		p = strings.TrimPrefix(p, root)
	}
	return strings.TrimLeft(p, "/")
}
