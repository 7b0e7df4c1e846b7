package materializer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/albumix/albumix/internal/materializer/fsstore"
)

// localMaterializer 原图和缩略图都写入本地存储
type localMaterializer struct {
	store   *fsstore.Store
	resizer *Resizer
}

func (m *localMaterializer) Materialize(ctx context.Context, albumID uint, storedName string, contentType string, data []byte) (*Result, error) {
	if err := m.store.Save(ctx, albumID, fsstore.FolderPhotos, storedName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	thumb, err := m.resizer.Thumbnail(ctx, data)
	if err != nil {
		// 回滚已写入的原图
		_ = m.store.Delete(ctx, albumID, fsstore.FolderPhotos, storedName)
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	thumbName := ThumbnailPrefix + storedName
	if err := m.store.Save(ctx, albumID, fsstore.FolderThumbnails, thumbName, bytes.NewReader(thumb)); err != nil {
		_ = m.store.Delete(ctx, albumID, fsstore.FolderPhotos, storedName)
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	return &Result{
		StoredFilename:    storedName,
		ThumbnailFilename: thumbName,
	}, nil
}

func (m *localMaterializer) Discard(ctx context.Context, albumID uint, refs Artifacts) error {
	var errs []error
	if refs.StoredFilename != "" {
		if err := m.store.Delete(ctx, albumID, fsstore.FolderPhotos, refs.StoredFilename); err != nil {
			errs = append(errs, err)
		}
	}
	if refs.ThumbnailFilename != "" {
		if err := m.store.Delete(ctx, albumID, fsstore.FolderThumbnails, refs.ThumbnailFilename); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *localMaterializer) Health(ctx context.Context) error {
	return m.store.Health(ctx)
}

func (m *localMaterializer) Mode() string {
	return ModeLocal
}
