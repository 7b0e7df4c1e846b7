// Package albums 相册生命周期：创建、更新、查询与级联删除。
package albums

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/albumix/albumix/cache"
	"github.com/albumix/albumix/database/models"
	albumsrepo "github.com/albumix/albumix/database/repo/albums"
	photosrepo "github.com/albumix/albumix/database/repo/photos"
	"github.com/albumix/albumix/internal/access"
	"github.com/albumix/albumix/internal/materializer"
	"github.com/albumix/albumix/internal/materializer/fsstore"
	"github.com/albumix/albumix/internal/photos"
	"github.com/albumix/albumix/utils"
)

// View 相册视图，照片以嵌套视图返回
type View struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Photos      []*photos.View `json:"photos"`
	CreatedAt   int64          `json:"created_at"`
}

// Service 相册服务
type Service struct {
	repo       *albumsrepo.Repository
	photosRepo *photosrepo.Repository
	guard      *access.Guard
	mat        materializer.Materializer
	store      *fsstore.Store
	cacheStore cache.Provider
	listTTL    time.Duration
}

// NewService 创建相册服务
func NewService(
	repo *albumsrepo.Repository,
	photosRepo *photosrepo.Repository,
	guard *access.Guard,
	mat materializer.Materializer,
	store *fsstore.Store,
	cacheStore cache.Provider,
	listTTL time.Duration,
) *Service {
	return &Service{
		repo:       repo,
		photosRepo: photosRepo,
		guard:      guard,
		mat:        mat,
		store:      store,
		cacheStore: cacheStore,
		listTTL:    listTTL,
	}
}

// newView 构建相册视图
func newView(album *models.Album, photoRows []*models.Photo) *View {
	return &View{
		ID:          album.ID,
		Name:        album.Name,
		Description: album.Description,
		Photos:      photos.NewViews(photoRows),
		CreatedAt:   album.CreatedAt.Unix(),
	}
}

// Create 创建相册，所有者为调用账号
func (s *Service) Create(accountID uint, name, description string) (*View, error) {
	album := &models.Album{
		AccountID:   accountID,
		Name:        name,
		Description: description,
	}
	if err := s.repo.CreateAlbum(album); err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}

	s.invalidateListCache(accountID)
	return newView(album, nil), nil
}

// Update 更新相册名称与描述
func (s *Service) Update(accountID, albumID uint, name, description string) (*View, error) {
	album, err := s.guard.RequireAlbumOwner(accountID, albumID)
	if err != nil {
		return nil, err
	}

	album.Name = name
	album.Description = description
	if err := s.repo.UpdateAlbum(album); err != nil {
		return nil, fmt.Errorf("failed to update album: %w", err)
	}

	photoRows, err := s.photosRepo.GetPhotosByAlbumID(album.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load album photos: %w", err)
	}

	s.invalidateListCache(accountID)
	return newView(album, photoRows), nil
}

// Get 获取相册及其照片
func (s *Service) Get(accountID, albumID uint) (*View, error) {
	album, err := s.guard.RequireAlbumOwner(accountID, albumID)
	if err != nil {
		return nil, err
	}

	photoRows, err := s.photosRepo.GetPhotosByAlbumID(album.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load album photos: %w", err)
	}

	return newView(album, photoRows), nil
}

// List 列出调用账号的全部相册，带嵌套照片视图。列表经缓存，
// 任何相册/照片变更时失效。
func (s *Service) List(ctx context.Context, accountID uint) ([]*View, error) {
	cacheKey := cache.AlbumListKey(accountID)

	if s.cacheStore != nil {
		var cached []*View
		if err := s.cacheStore.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	albums, err := s.repo.GetAlbumsByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	views := make([]*View, 0, len(albums))
	for _, album := range albums {
		photoRows, err := s.photosRepo.GetPhotosByAlbumID(album.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load photos for album %d: %w", album.ID, err)
		}
		views = append(views, newView(album, photoRows))
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.Set(ctx, cacheKey, views, s.listTTL); err != nil {
			log.Printf("Failed to cache album list for account %d: %v", accountID, err)
		}
	}

	return views, nil
}

// Delete 删除相册：逐照片尽力清理产物（失败记录日志，不中断），
// 然后删除照片行与相册行。
func (s *Service) Delete(ctx context.Context, accountID, albumID uint) error {
	album, err := s.guard.RequireAlbumOwner(accountID, albumID)
	if err != nil {
		return err
	}

	if err := s.purgeAlbum(ctx, album); err != nil {
		return err
	}

	s.invalidateListCache(accountID)
	return nil
}

// DeleteAllForAccount 删除账号的全部相册（账号注销级联）
func (s *Service) DeleteAllForAccount(ctx context.Context, accountID uint) error {
	albums, err := s.repo.GetAlbumsByAccountID(accountID)
	if err != nil {
		return fmt.Errorf("failed to list albums: %w", err)
	}

	var errs []error
	for _, album := range albums {
		if err := s.purgeAlbum(ctx, album); err != nil {
			errs = append(errs, err)
		}
	}

	s.invalidateListCache(accountID)
	return errors.Join(errs...)
}

// purgeAlbum 清理单个相册的产物与行
func (s *Service) purgeAlbum(ctx context.Context, album *models.Album) error {
	photoRows, err := s.photosRepo.GetPhotosByAlbumID(album.ID)
	if err != nil {
		return fmt.Errorf("failed to load photos for album %d: %w", album.ID, err)
	}

	for _, photo := range photoRows {
		if err := s.mat.Discard(ctx, album.ID, materializer.Artifacts{
			StoredFilename:    photo.StoredFilename,
			ThumbnailFilename: photo.ThumbnailFilename,
			RemotePublicID:    photo.RemotePublicID,
		}); err != nil {
			log.Printf("Failed to clean up artifacts for photo %d in album %d: %v", photo.ID, album.ID, err)
		}
	}

	if err := s.photosRepo.DeletePhotosByAlbumID(album.ID); err != nil {
		return fmt.Errorf("failed to delete photos for album %d: %w", album.ID, err)
	}
	if err := s.repo.DeleteAlbum(album.ID); err != nil {
		return fmt.Errorf("failed to delete album %d: %w", album.ID, err)
	}

	// 行删除后移除相册目录树，失败只记录
	if s.store != nil {
		if err := s.store.RemoveAlbum(ctx, album.ID); err != nil {
			log.Printf("Failed to remove album directory %d: %v", album.ID, err)
		}
	}
	return nil
}

// invalidateListCache 相册列表缓存失效
func (s *Service) invalidateListCache(accountID uint) {
	if s.cacheStore == nil {
		return
	}
	utils.SafeGo(func() {
		if err := s.cacheStore.Delete(context.Background(), cache.AlbumListKey(accountID)); err != nil {
			log.Printf("Failed to invalidate album list cache for account %d: %v", accountID, err)
		}
	})
}
