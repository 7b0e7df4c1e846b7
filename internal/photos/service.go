// Package photos 照片生命周期：批量上传、更新、删除、下载与缩略图。
package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/albumix/albumix/cache"
	"github.com/albumix/albumix/database/models"
	"github.com/albumix/albumix/database/repo/photos"
	"github.com/albumix/albumix/internal/access"
	"github.com/albumix/albumix/internal/materializer"
	"github.com/albumix/albumix/internal/materializer/fsstore"
	"github.com/albumix/albumix/utils"
	"github.com/albumix/albumix/utils/validator"
)

const storedNamePrefixLength = 10

var (
	// ErrUnsupportedFileType 上传的文件不是图片
	ErrUnsupportedFileType = errors.New("the uploaded file type is not supported")
	// ErrArtifactMissing 元数据存在但产物缺失
	ErrArtifactMissing = errors.New("photo artifact is missing")
)

var thumbnailGroup singleflight.Group

// UploadError 单个文件的上传失败记录
type UploadError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchResult 批量上传结果
type BatchResult struct {
	Success []*View        `json:"SUCCESS"`
	Errors  []*UploadError `json:"ERRORS"`
}

// AllFailed 批次是否全部失败
func (r *BatchResult) AllFailed() bool {
	return len(r.Success) == 0 && len(r.Errors) > 0
}

// Partial 批次是否存在失败
func (r *BatchResult) Partial() bool {
	return len(r.Errors) > 0
}

// DownloadResult 下载结果，调用方负责关闭 File
type DownloadResult struct {
	File             *os.File
	OriginalFilename string
	Size             int64
}

// ThumbnailResult 缩略图解析结果。RedirectURL 非空时重定向到远程托管，
// 否则返回本地字节。
type ThumbnailResult struct {
	RedirectURL string
	Data        []byte
	ContentType string
}

// Service 照片服务
type Service struct {
	repo         *photos.Repository
	guard        *access.Guard
	mat          materializer.Materializer
	store        *fsstore.Store
	cacheStore   cache.Provider
	thumbTTL     time.Duration
	strictChecks bool
	maxFileSize  int64
}

// NewService 创建照片服务
func NewService(
	repo *photos.Repository,
	guard *access.Guard,
	mat materializer.Materializer,
	store *fsstore.Store,
	cacheStore cache.Provider,
	thumbTTL time.Duration,
	strictChecks bool,
	maxFileSize int64,
) *Service {
	return &Service{
		repo:         repo,
		guard:        guard,
		mat:          mat,
		store:        store,
		cacheStore:   cacheStore,
		thumbTTL:     thumbTTL,
		strictChecks: strictChecks,
		maxFileSize:  maxFileSize,
	}
}

// Upload 批量上传照片。所有权校验对整个批次执行一次，
// 之后逐个文件独立处理：单个文件失败只记录，不影响批次中其他文件。
func (s *Service) Upload(ctx context.Context, accountID, albumID uint, files []*multipart.FileHeader) (*BatchResult, error) {
	if _, err := s.guard.RequireAlbumOwner(accountID, albumID); err != nil {
		return nil, err
	}

	result := &BatchResult{
		Success: make([]*View, 0, len(files)),
		Errors:  make([]*UploadError, 0),
	}

	for _, fileHeader := range files {
		photo, err := s.processOne(ctx, albumID, fileHeader)
		if err != nil {
			// 客户端断开后不再处理批次中剩余的文件
			if utils.IsContextCanceled(err) {
				return nil, err
			}
			result.Errors = append(result.Errors, &UploadError{
				Filename: fileHeader.Filename,
				Reason:   err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, NewView(photo))
	}

	s.invalidateAlbumCaches(accountID)
	return result, nil
}

// processOne 处理单个上传文件
func (s *Service) processOne(ctx context.Context, albumID uint, fileHeader *multipart.FileHeader) (*models.Photo, error) {
	if s.maxFileSize > 0 && fileHeader.Size > s.maxFileSize {
		return nil, fmt.Errorf("file exceeds the maximum allowed size of %d bytes", s.maxFileSize)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !validator.IsImageContentType(contentType) {
		return nil, ErrUnsupportedFileType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// 严格模式下嗅探实际字节，不信任客户端声明的类型
	if s.strictChecks {
		isImage, sniffed, err := validator.IsImage(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to validate file: %w", err)
		}
		if !isImage {
			return nil, ErrUnsupportedFileType
		}
		contentType = sniffed
	}

	prefix, err := utils.RandomAlphanumeric(storedNamePrefixLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate stored name: %w", err)
	}
	storedName := prefix + "_" + fileHeader.Filename

	if !fsstore.IsValidName(storedName) {
		return nil, fmt.Errorf("invalid filename: %s", utils.SanitizeLogFilename(fileHeader.Filename))
	}

	matResult, err := s.mat.Materialize(ctx, albumID, storedName, contentType, data)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		AlbumID:            albumID,
		Name:               fileHeader.Filename,
		OriginalFilename:   fileHeader.Filename,
		StoredFilename:     matResult.StoredFilename,
		ThumbnailFilename:  matResult.ThumbnailFilename,
		RemotePublicID:     matResult.RemotePublicID,
		RemoteThumbnailURL: matResult.RemoteThumbnailURL,
	}

	if err := s.repo.CreatePhoto(photo); err != nil {
		// 元数据写入失败，补偿清理已固化的产物（单次，不重试）
		if discardErr := s.mat.Discard(ctx, albumID, materializer.Artifacts{
			StoredFilename:    matResult.StoredFilename,
			ThumbnailFilename: matResult.ThumbnailFilename,
			RemotePublicID:    matResult.RemotePublicID,
		}); discardErr != nil {
			log.Printf("Failed to discard artifacts after DB error for %s: %v",
				utils.SanitizeLogFilename(storedName), discardErr)
		}
		return nil, fmt.Errorf("failed to save photo metadata: %w", err)
	}

	return photo, nil
}

// Update 更新照片名称与描述
func (s *Service) Update(accountID, albumID, photoID uint, name, description string) (*View, error) {
	_, photo, err := s.guard.RequirePhotoInAlbum(accountID, albumID, photoID)
	if err != nil {
		return nil, err
	}

	photo.Name = name
	photo.Description = description
	if err := s.repo.UpdatePhoto(photo); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}

	s.invalidateAlbumCaches(accountID)
	return NewView(photo), nil
}

// Delete 删除照片。产物清理尽力而为：失败只记录日志，
// 元数据行的删除优先于存储清理。
func (s *Service) Delete(ctx context.Context, accountID, albumID, photoID uint) error {
	_, photo, err := s.guard.RequirePhotoInAlbum(accountID, albumID, photoID)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePhoto(photo.ID); err != nil {
		return fmt.Errorf("failed to delete photo metadata: %w", err)
	}

	if err := s.mat.Discard(ctx, albumID, materializer.Artifacts{
		StoredFilename:    photo.StoredFilename,
		ThumbnailFilename: photo.ThumbnailFilename,
		RemotePublicID:    photo.RemotePublicID,
	}); err != nil {
		log.Printf("Failed to clean up artifacts for photo %d: %v", photo.ID, err)
	}

	s.invalidateThumbnailCache(albumID, photoID)
	s.invalidateAlbumCaches(accountID)
	return nil
}

// Download 下载照片原图。元数据存在但产物缺失视为未找到（不修复）。
func (s *Service) Download(ctx context.Context, accountID, albumID, photoID uint) (*DownloadResult, error) {
	_, photo, err := s.guard.RequirePhotoInAlbum(accountID, albumID, photoID)
	if err != nil {
		return nil, err
	}

	file, err := s.store.Open(ctx, albumID, fsstore.FolderPhotos, photo.StoredFilename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Detected missing artifact for photo %d (album %d)", photo.ID, albumID)
			return nil, ErrArtifactMissing
		}
		return nil, fmt.Errorf("failed to open photo artifact: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat photo artifact: %w", err)
	}

	return &DownloadResult{
		File:             file,
		OriginalFilename: photo.OriginalFilename,
		Size:             info.Size(),
	}, nil
}

// Thumbnail 解析公开缩略图。远程托管返回重定向 URL，
// 本地缩略图经缓存和 singleflight 返回字节。
func (s *Service) Thumbnail(ctx context.Context, albumID, photoID uint) (*ThumbnailResult, error) {
	photo, err := s.repo.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	if photo.AlbumID != albumID {
		return nil, access.ErrNotFound
	}

	if photo.HasRemoteThumbnail() {
		return &ThumbnailResult{RedirectURL: photo.RemoteThumbnailURL}, nil
	}
	if !photo.HasLocalThumbnail() {
		return nil, access.ErrNotFound
	}

	key := cache.ThumbnailKey(albumID, photoID)

	if s.cacheStore != nil {
		var cached []byte
		if err := s.cacheStore.Get(ctx, key, &cached); err == nil {
			return &ThumbnailResult{Data: cached, ContentType: "image/jpeg"}, nil
		}
	}

	// 相同缩略图的并发读合并为一次磁盘读取
	value, err, _ := thumbnailGroup.Do(key, func() (interface{}, error) {
		file, err := s.store.Open(ctx, albumID, fsstore.FolderThumbnails, photo.ThumbnailFilename)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, access.ErrNotFound
			}
			return nil, err
		}
		defer func() { _ = file.Close() }()
		return io.ReadAll(file)
	})
	if err != nil {
		return nil, err
	}

	data := value.([]byte)
	if s.cacheStore != nil {
		utils.SafeGo(func() {
			if err := s.cacheStore.Set(context.Background(), key, data, s.thumbTTL); err != nil {
				log.Printf("Failed to cache thumbnail %s: %v", key, err)
			}
		})
	}

	return &ThumbnailResult{Data: data, ContentType: "image/jpeg"}, nil
}

// invalidateAlbumCaches 相册视图缓存失效
func (s *Service) invalidateAlbumCaches(accountID uint) {
	if s.cacheStore == nil {
		return
	}
	utils.SafeGo(func() {
		if err := s.cacheStore.Delete(context.Background(), cache.AlbumListKey(accountID)); err != nil {
			log.Printf("Failed to invalidate album list cache for account %d: %v", accountID, err)
		}
	})
}

// invalidateThumbnailCache 缩略图缓存失效
func (s *Service) invalidateThumbnailCache(albumID, photoID uint) {
	if s.cacheStore == nil {
		return
	}
	utils.SafeGo(func() {
		if err := s.cacheStore.Delete(context.Background(), cache.ThumbnailKey(albumID, photoID)); err != nil {
			log.Printf("Failed to invalidate thumbnail cache %d/%d: %v", albumID, photoID, err)
		}
	})
}
