package repository

import (
	"context"
	"time"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"

	"gorm.io/gorm"
)

// ImageRepository tracks uploaded blobs. Rows start provisional (NULL
// product_id) and are claimed by the attach flow; unclaimed rows past the
// reap TTL are cleaned up by the background worker.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) error
	FindByURL(ctx context.Context, url string) (*model.Image, error)
	FindByURLTx(tx *gorm.DB, url string) (*model.Image, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Image, error)
	// ClaimTx assigns a provisional image to a product inside a transaction,
	// recording its gallery position.
	ClaimTx(tx *gorm.DB, imageID, productID uint, position int) error
	CountByProductTx(tx *gorm.DB, productID uint) (int64, error)
	DeleteByURL(ctx context.Context, url string) error
	// ListUnattachedBefore returns provisional images created before cutoff.
	ListUnattachedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Image, error)
}

type imageRepository struct{ db *gorm.DB }

func NewImageRepository(db *gorm.DB) ImageRepository { return &imageRepository{db: db} }

func (r *imageRepository) Create(ctx context.Context, img *model.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *imageRepository) FindByURL(ctx context.Context, url string) (*model.Image, error) {
	var img model.Image
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepository) FindByURLTx(tx *gorm.DB, url string) (*model.Image, error) {
	var img model.Image
	err := tx.Where("url = ?", url).First(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepository) ListByProduct(ctx context.Context, productID uint) ([]model.Image, error) {
	var imgs []model.Image
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("position asc, id asc").Find(&imgs).Error
	return imgs, err
}

func (r *imageRepository) ClaimTx(tx *gorm.DB, imageID, productID uint, position int) error {
	return tx.Model(&model.Image{}).Where("id = ?", imageID).
		Updates(map[string]interface{}{"product_id": productID, "position": position}).Error
}

func (r *imageRepository) CountByProductTx(tx *gorm.DB, productID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.Image{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *imageRepository) DeleteByURL(ctx context.Context, url string) error {
	return r.db.WithContext(ctx).Where("url = ?", url).Delete(&model.Image{}).Error
}

func (r *imageRepository) ListUnattachedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Image, error) {
	var imgs []model.Image
	err := r.db.WithContext(ctx).
		Where("product_id IS NULL AND created_at < ?", cutoff).
		Order("created_at asc").Limit(limit).
		Find(&imgs).Error
	return imgs, err
}
