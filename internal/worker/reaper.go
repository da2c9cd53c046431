package worker

// reaper.go — provisional image reaper
// Uploaded images that were never attached to a product are ordinary rows
// with a NULL product_id. This cron scans for rows older than the configured
// TTL and enqueues cleanup jobs for the worker pool.

import (
	"context"
	"time"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"

	"github.com/rs/zerolog/log"
)

const reapBatchSize = 100

// StartImageReaper runs the reap loop until ctx is cancelled.
func StartImageReaper(ctx context.Context, images repository.ImageRepository, dispatcher *Dispatcher, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("ttl", ttl).Dur("interval", interval).Msg("image reaper started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("image reaper shutting down")
				return
			case <-ticker.C:
				reapOnce(ctx, images, dispatcher, ttl)
			}
		}
	}()
}

func reapOnce(ctx context.Context, images repository.ImageRepository, dispatcher *Dispatcher, ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)
	orphans, err := images.ListUnattachedBefore(ctx, cutoff, reapBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reaper: failed to list provisional images")
		return
	}
	if len(orphans) == 0 {
		return
	}

	enqueued := 0
	for _, img := range orphans {
		if err := dispatcher.EnqueueImageCleanup(ctx, img.URL); err != nil {
			log.Error().Err(err).Str("url", img.URL).Msg("reaper: enqueue failed")
			continue
		}
		enqueued++
	}
	log.Info().Int("enqueued", enqueued).Time("cutoff", cutoff).Msg("reaper: cleanup jobs enqueued")
}
