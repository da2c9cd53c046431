package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/dto"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/infra"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/model"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrEmptyUpload     = errors.New("uploaded file is empty")
	ErrBadImageType    = errors.New("only jpeg, png and webp images are accepted")
	ErrImageNotFound   = errors.New("image not found")
	ErrImageClaimed    = errors.New("image already belongs to another product")
	ErrBlobUnavailable = errors.New("image store is currently unavailable")
	ErrBlobUpload      = errors.New("image upload to the blob store failed")
)

// DeleteResult is the typed outcome of a blob deletion. Callers decide what
// to do with "unreachable" — nothing is swallowed.
type DeleteResult string

const (
	DeleteResultDeleted     DeleteResult = "deleted"
	DeleteResultNotFound    DeleteResult = "not_found"
	DeleteResultUnreachable DeleteResult = "unreachable"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageService handles the blob side of product images. Uploads are
// independent of product persistence: they create provisional rows that a
// later Attach call claims for a product.
type ImageService interface {
	Upload(ctx context.Context, filename string, size int64, r io.Reader) (*dto.UploadImageResponse, error)
	Attach(ctx context.Context, productID uint, req dto.AttachImagesRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, url string) (DeleteResult, error)
}

type imageService struct {
	images   repository.ImageRepository
	products repository.ProductRepository

	store      infra.BlobStore
	breaker    *infra.CircuitBreaker
	dispatcher *worker.Dispatcher
	prefix     string
}

func NewImageService(images repository.ImageRepository, products repository.ProductRepository, store infra.BlobStore, breaker *infra.CircuitBreaker, dispatcher *worker.Dispatcher, prefix string) ImageService {
	return &imageService{
		images:     images,
		products:   products,
		store:      store,
		breaker:    breaker,
		dispatcher: dispatcher,
		prefix:     strings.Trim(prefix, "/"),
	}
}

// Upload stores the file bytes in the blob store and records a provisional
// Image row. Upload failures are fatal and surfaced to the uploader — only
// deletions are best-effort.
func (s *imageService) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*dto.UploadImageResponse, error) {
	if size <= 0 {
		return nil, ErrEmptyUpload
	}

	// Sniff the actual MIME from the bytes — never trust the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		return nil, ErrBadImageType
	}
	body := io.MultiReader(bytes.NewReader(head[:n]), r)

	key := fmt.Sprintf("%s/%s_%s", s.prefix, uuid.NewString()[:8], path.Base(filename))

	var url string
	err = s.breaker.Execute(func() error {
		var putErr error
		url, putErr = s.store.Put(ctx, key, body, size, contentType)
		return putErr
	})
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			return nil, ErrBlobUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrBlobUpload, err)
	}

	img := &model.Image{URL: url}
	if err := s.images.Create(ctx, img); err != nil {
		// The blob exists but the row does not — undo asynchronously so the
		// object is not orphaned forever.
		if qErr := s.dispatcher.EnqueueImageCleanup(ctx, url); qErr != nil {
			log.Error().Err(qErr).Str("url", url).Msg("failed to enqueue blob cleanup")
		}
		return nil, err
	}

	return &dto.UploadImageResponse{URL: url}, nil
}

// Attach claims previously uploaded images for a product and sets the cover
// index, all in one transaction. The cover index is clamped to the size of
// the resulting image set (0 when the set is empty).
func (s *imageService) Attach(ctx context.Context, productID uint, req dto.AttachImagesRequest) (*dto.ProductResponse, error) {
	err := s.products.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.products.FindByIDTx(tx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		for i, url := range req.URLs {
			img, err := s.images.FindByURLTx(tx, url)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrImageNotFound, url)
				}
				return err
			}
			if img.ProductID != nil && *img.ProductID != productID {
				return fmt.Errorf("%w: %s", ErrImageClaimed, url)
			}
			// The position in the request becomes the gallery position, so
			// the cover index refers to the order the caller sent.
			if err := s.images.ClaimTx(tx, img.ID, productID, i); err != nil {
				return err
			}
		}

		count, err := s.images.CountByProductTx(tx, productID)
		if err != nil {
			return err
		}
		cover := clampCoverIndex(req.CoverImageIndex, count)
		return s.products.UpdateCoverImageIndexTx(tx, productID, cover)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := mapProduct(*full)
	return &resp, nil
}

// clampCoverIndex keeps the cover index inside [0, imageCount-1]; a product
// without images keeps index 0.
func clampCoverIndex(index int, imageCount int64) int {
	if imageCount == 0 || index < 0 {
		return 0
	}
	if int64(index) >= imageCount {
		return int(imageCount - 1)
	}
	return index
}

// Delete removes the blob behind url and its DB row if one exists. The
// outcome is reported, never swallowed: "unreachable" covers both an open
// circuit and a failed store call.
func (s *imageService) Delete(ctx context.Context, url string) (DeleteResult, error) {
	var notFound bool
	err := s.breaker.Execute(func() error {
		rmErr := s.store.Remove(ctx, url)
		if errors.Is(rmErr, infra.ErrObjectNotFound) || errors.Is(rmErr, infra.ErrNotOwnURL) {
			// Absent objects don't count as store failures.
			notFound = true
			return nil
		}
		return rmErr
	})
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("blob delete failed")
		return DeleteResultUnreachable, nil
	}

	if err := s.images.DeleteByURL(ctx, url); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return DeleteResultUnreachable, err
	}

	if notFound {
		return DeleteResultNotFound, nil
	}
	return DeleteResultDeleted, nil
}
