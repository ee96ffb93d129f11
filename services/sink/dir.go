// Package sinksvc stores exported transcripts on disk or in a cloud bucket.
package sinksvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/export"
)

// DirSink writes files into a local directory. Files are written to a temporary file first and
// renamed into place, so readers never see a partial file.
type DirSink struct {
	dir string
}

var _ export.Sink = (*DirSink)(nil)

func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating export directory")
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) Save(ctx context.Context, f export.File) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+f.Name+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(f.Data); err != nil {
		return errors.Wrap(err, "writing export")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing export")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "setting export permissions")
	}
	if err = os.Rename(tmp.Name(), s.Path(f.Name)); err != nil {
		return errors.Wrap(err, "moving export into place")
	}
	return nil
}

// Path is where a file named name is saved.
func (s *DirSink) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
