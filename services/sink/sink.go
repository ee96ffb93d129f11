package sinksvc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/export"
)

// Sink kinds
const (
	KindDir = "dir"
	KindGCS = "gcs"
	KindS3  = "s3"
)

// New builds the archive sink selected by the configuration.
func New(ctx context.Context, conf core.ExportConfig) (export.Sink, error) {
	switch conf.Sink {
	case KindDir, "":
		return NewDirSink(conf.Dir)
	case KindGCS:
		return NewGCSSink(ctx, conf.Bucket, conf.Prefix)
	case KindS3:
		return NewS3Sink(ctx, conf.Region, conf.Bucket, conf.Prefix)
	}
	return nil, errors.Errorf("unknown export sink %q", conf.Sink)
}
