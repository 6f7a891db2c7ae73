package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
)

// ImageDir is the key prefix for menu images.
const ImageDir = "images"

// ImageKey turns an uploaded filename into a storage key below ImageDir.
// Only the base name is kept. A name with no stem becomes a UUID with the
// original extension.
func ImageKey(filename string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	switch base {
	case ".", "/", "..":
		base = ""
	}

	ext := path.Ext(base)
	if strings.TrimSuffix(base, ext) == "" {
		base = uuid.NewString() + ext
	}
	return ImageDir + "/" + base
}

// Staged is a file written ahead of a database commit. If the commit
// fails the caller discards it.
type Staged struct {
	disk      Disk
	Key       string
	overwrote bool
}

// Stage writes r to key on d, recording whether an object was already
// there. Writes are last-write-wins.
func Stage(ctx context.Context, d Disk, key string, r io.Reader) (*Staged, error) {
	existed, err := d.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := d.Put(ctx, key, r); err != nil {
		return nil, err
	}
	metrics.ImageOperations.WithLabelValues("stage").Inc()
	return &Staged{disk: d, Key: key, overwrote: existed}, nil
}

// Overwrote reports whether staging replaced an existing object.
func (s *Staged) Overwrote() bool { return s.overwrote }

// Discard removes the staged file unless it replaced an existing one.
// Failures are logged only.
func (s *Staged) Discard(ctx context.Context) {
	if s == nil || s.overwrote {
		return
	}
	if err := s.disk.Delete(ctx, s.Key); err != nil {
		logger.WithCtx(ctx).Warn("discard staged file failed", "key", s.Key, "error", err)
		return
	}
	metrics.ImageOperations.WithLabelValues("discard").Inc()
}
