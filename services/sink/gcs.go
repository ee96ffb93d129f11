package sinksvc

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/export"
)

// GCSSink uploads files to a Google Cloud Storage bucket.
// An object only becomes visible once its writer is closed successfully.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ export.Sink = (*GCSSink)(nil)

// NewGCSSink uses the application default credentials.
func NewGCSSink(ctx context.Context, bucket, prefix string) (*GCSSink, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "creating gcs client")
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *GCSSink) Save(ctx context.Context, f export.File) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectKey(s.prefix, f.Name)).NewWriter(ctx)
	w.ContentType = f.ContentType
	w.ContentDisposition = `attachment; filename="` + f.Name + `"`

	if _, err := w.Write(f.Data); err != nil {
		// canceling the context aborts the upload
		cancel()
		_ = w.Close()
		return errors.Wrap(err, "uploading export")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "finalizing export upload")
	}
	return nil
}

func (s *GCSSink) Close() error {
	return s.client.Close()
}

func objectKey(prefix, name string) string {
	return path.Join(prefix, path.Base(name))
}
