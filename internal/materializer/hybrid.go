package materializer

import (
	"context"
	"fmt"
)

// hybridMaterializer 缩略图同时落本地和远程。远程失败时整个文件失败，
// 已写入的本地产物回滚。
type hybridMaterializer struct {
	local  *localMaterializer
	remote *remoteMaterializer
}

func (m *hybridMaterializer) Materialize(ctx context.Context, albumID uint, storedName string, contentType string, data []byte) (*Result, error) {
	localResult, err := m.local.Materialize(ctx, albumID, storedName, contentType, data)
	if err != nil {
		return nil, err
	}

	thumb, err := m.remote.resizer.Thumbnail(ctx, data)
	if err != nil {
		_ = m.local.Discard(ctx, albumID, Artifacts{
			StoredFilename:    localResult.StoredFilename,
			ThumbnailFilename: localResult.ThumbnailFilename,
		})
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	key := remoteThumbnailKey(albumID, storedName)
	publicID, url, err := m.remote.host.Upload(ctx, key, thumbnailMIMEType, thumb)
	if err != nil {
		_ = m.local.Discard(ctx, albumID, Artifacts{
			StoredFilename:    localResult.StoredFilename,
			ThumbnailFilename: localResult.ThumbnailFilename,
		})
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	return &Result{
		StoredFilename:     localResult.StoredFilename,
		ThumbnailFilename:  localResult.ThumbnailFilename,
		RemotePublicID:     publicID,
		RemoteThumbnailURL: url,
	}, nil
}

func (m *hybridMaterializer) Discard(ctx context.Context, albumID uint, refs Artifacts) error {
	// remote.Discard 覆盖本地原图、本地缩略图和远程产物
	return m.remote.Discard(ctx, albumID, refs)
}

func (m *hybridMaterializer) Health(ctx context.Context) error {
	return m.remote.Health(ctx)
}

func (m *hybridMaterializer) Mode() string {
	return ModeHybrid
}
