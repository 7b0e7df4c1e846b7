package materializer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/albumix/albumix/internal/materializer/fsstore"
	"github.com/albumix/albumix/internal/materializer/remotehost"
)

// remoteMaterializer 原图写入本地存储，缩略图上传到远程主机
type remoteMaterializer struct {
	store   *fsstore.Store
	host    remotehost.Host
	resizer *Resizer
}

func (m *remoteMaterializer) Materialize(ctx context.Context, albumID uint, storedName string, contentType string, data []byte) (*Result, error) {
	if err := m.store.Save(ctx, albumID, fsstore.FolderPhotos, storedName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	thumb, err := m.resizer.Thumbnail(ctx, data)
	if err != nil {
		_ = m.store.Delete(ctx, albumID, fsstore.FolderPhotos, storedName)
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	key := remoteThumbnailKey(albumID, storedName)
	publicID, url, err := m.host.Upload(ctx, key, thumbnailMIMEType, thumb)
	if err != nil {
		_ = m.store.Delete(ctx, albumID, fsstore.FolderPhotos, storedName)
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	return &Result{
		StoredFilename:     storedName,
		RemotePublicID:     publicID,
		RemoteThumbnailURL: url,
	}, nil
}

func (m *remoteMaterializer) Discard(ctx context.Context, albumID uint, refs Artifacts) error {
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
	if refs.RemotePublicID != "" {
		if err := m.host.Destroy(ctx, refs.RemotePublicID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *remoteMaterializer) Health(ctx context.Context) error {
	if err := m.store.Health(ctx); err != nil {
		return err
	}
	return m.host.Health(ctx)
}

func (m *remoteMaterializer) Mode() string {
	return ModeRemote
}
