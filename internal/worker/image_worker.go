package worker

import (
	"context"
	"errors"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/infra"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ImageCleanupWorker removes orphaned blobs and their provisional DB rows.
// A blob that is already gone counts as success; a store outage is an error
// so the job is retried and eventually parked in the DLQ.
type ImageCleanupWorker struct {
	store   infra.BlobStore
	breaker *infra.CircuitBreaker
	images  repository.ImageRepository
}

func NewImageCleanupWorker(store infra.BlobStore, breaker *infra.CircuitBreaker, images repository.ImageRepository) *ImageCleanupWorker {
	return &ImageCleanupWorker{store: store, breaker: breaker, images: images}
}

func (w *ImageCleanupWorker) Handle(ctx context.Context, payload ImageCleanupPayload) error {
	err := w.breaker.Execute(func() error {
		rmErr := w.store.Remove(ctx, payload.URL)
		if errors.Is(rmErr, infra.ErrObjectNotFound) || errors.Is(rmErr, infra.ErrNotOwnURL) {
			// Already gone (or never ours) — don't trip the breaker.
			return nil
		}
		return rmErr
	})
	if err != nil {
		return err
	}

	if err := w.images.DeleteByURL(ctx, payload.URL); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Debug().Str("url", payload.URL).Msg("orphaned image cleaned up")
	return nil
}
