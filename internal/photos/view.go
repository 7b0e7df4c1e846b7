package photos

import (
	"fmt"

	"github.com/albumix/albumix/database/models"
)

// PublicThumbnailPathFormat 本地缩略图公开路由模板
const PublicThumbnailPathFormat = "/api/v2/public/thumbnails/%d/%d"

// View 照片视图
type View struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	OriginalFilename string `json:"original_filename"`
	ThumbnailURL     string `json:"thumbnail_url"`
	CreatedAt        int64  `json:"created_at"`
}

// NewView 构建照片视图。远程缩略图直接引用远程 URL，
// 本地缩略图走公开缩略图路由。
func NewView(photo *models.Photo) *View {
	thumbnailURL := ""
	if photo.HasRemoteThumbnail() {
		thumbnailURL = photo.RemoteThumbnailURL
	} else if photo.HasLocalThumbnail() {
		thumbnailURL = fmt.Sprintf(PublicThumbnailPathFormat, photo.AlbumID, photo.ID)
	}

	return &View{
		ID:               photo.ID,
		Name:             photo.Name,
		Description:      photo.Description,
		OriginalFilename: photo.OriginalFilename,
		ThumbnailURL:     thumbnailURL,
		CreatedAt:        photo.CreatedAt.Unix(),
	}
}

// NewViews 批量构建照片视图
func NewViews(photos []*models.Photo) []*View {
	views := make([]*View, 0, len(photos))
	for _, photo := range photos {
		views = append(views, NewView(photo))
	}
	return views
}
