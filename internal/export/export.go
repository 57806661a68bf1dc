package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vela/internal/config"
	"github.com/vango-dev/vela/internal/errors"
)

// Store receives a finished stylesheet.
type Store interface {
	Put(ctx context.Context, css []byte) error
}

// Open returns the store for target. An empty target writes to stdout.
func Open(target, region string) (Store, error) {
	switch {
	case target == "":
		return NewWriterStore(os.Stdout), nil
	case strings.HasPrefix(target, "s3://"):
		bucket, key, ok := config.SplitS3(target)
		if !ok {
			return nil, errors.New("E302").
				WithDetailf("%q is not an s3://bucket/key URL", target)
		}
		return NewS3Store(NewS3Client(region), bucket, key), nil
	default:
		return NewFileStore(target), nil
	}
}

// FileStore writes the stylesheet to a local file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Put writes css next to the destination and renames it into place, so
// readers never see a partial file.
func (s *FileStore) Put(_ context.Context, css []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E302").Wrap(err)
	}

	f, err := os.CreateTemp(dir, ".vela-*.css")
	if err != nil {
		return errors.New("E302").Wrap(err)
	}
	tmp := f.Name()
	if _, err := f.Write(css); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.New("E302").Wrap(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.New("E302").Wrap(err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.New("E302").Wrap(err)
	}
	return nil
}

// Path returns the destination path.
func (s *FileStore) Path() string { return s.path }

// WriterStore writes the stylesheet to an io.Writer.
type WriterStore struct {
	w io.Writer
}

// NewWriterStore creates a WriterStore.
func NewWriterStore(w io.Writer) *WriterStore {
	return &WriterStore{w: w}
}

// Put writes css to the writer.
func (s *WriterStore) Put(_ context.Context, css []byte) error {
	if _, err := s.w.Write(css); err != nil {
		return errors.New("E302").Wrap(err)
	}
	return nil
}
