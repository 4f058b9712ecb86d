// Package async executes deferred single-field mutations outside the
// request/response lifecycle.
//
// A PUT handler schedules an Update and returns 202 immediately; a background
// goroutine sleeps for the configured delay (simulating a slow downstream
// dependency) and then commits the write. The goroutine carries only the
// primary key and the new value — never the entity loaded during the request.
// On wake it re-reads the row by id inside its own transaction, so a
// concurrent delete degrades to a logged no-op instead of undefined behavior,
// and concurrent PUTs resolve as last-commit-wins.
//
// Failures here are terminal: they are logged and counted, never retried, and
// never surfaced to the client that received the 202.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tasteboard/internal/cache"
	"tasteboard/internal/observability"

	"gorm.io/gorm"
)

// commitTimeout bounds the worker's own database context; the original
// request context has already ended by the time the worker wakes.
const commitTimeout = 10 * time.Second

// Update describes a deferred single-column mutation.
type Update struct {
	// Entity is a label for logs and metrics, e.g. "item".
	Entity string
	// Model must be a fresh pointer of the target type, e.g. &models.Item{}.
	// It is used only as a query destination, never as pre-loaded state.
	Model any
	// ID is the primary key of the row to mutate.
	ID uint
	// Column and Value describe the write.
	Column string
	Value  any
	// CacheKey, when set, is invalidated after a successful commit.
	CacheKey string
}

// Updater schedules and executes deferred mutations.
type Updater struct {
	db     *gorm.DB
	delay  time.Duration
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewUpdater creates an Updater committing against db after delay.
func NewUpdater(db *gorm.DB, delay time.Duration, logger *slog.Logger) *Updater {
	return &Updater{db: db, delay: delay, logger: logger}
}

// Schedule queues the update on a background goroutine and returns
// immediately. There is no cancellation: once scheduled, the update runs to
// completion (or to its terminal, logged failure) even if the caller is gone.
func (u *Updater) Schedule(up Update) {
	observability.DeferredUpdatesScheduled.WithLabelValues(up.Entity).Inc()
	u.logger.Info("deferred update scheduled",
		slog.String("entity", up.Entity),
		slog.Uint64("id", uint64(up.ID)),
		slog.String("column", up.Column),
		slog.Duration("delay", u.delay),
	)

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		time.Sleep(u.delay)
		u.commit(up)
	}()
}

// commit re-reads the row and applies the write under a fresh context.
func (u *Updater) commit(up Update) {
	ctx, cancel := context.WithTimeout(context.Background(), commitTimeout)
	defer cancel()

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-fetch by primary key rather than trusting request-time state.
		if err := tx.First(up.Model, up.ID).Error; err != nil {
			return err
		}
		return tx.Model(up.Model).Update(up.Column, up.Value).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Row deleted while the update was in flight: documented no-op.
		observability.DeferredUpdatesSkipped.WithLabelValues(up.Entity).Inc()
		u.logger.Warn("deferred update skipped, row no longer exists",
			slog.String("entity", up.Entity),
			slog.Uint64("id", uint64(up.ID)),
		)
	case err != nil:
		observability.DeferredUpdatesFailed.WithLabelValues(up.Entity).Inc()
		u.logger.Error("deferred update failed",
			slog.String("entity", up.Entity),
			slog.Uint64("id", uint64(up.ID)),
			slog.String("column", up.Column),
			slog.String("error", err.Error()),
		)
	default:
		if up.CacheKey != "" {
			cache.Invalidate(ctx, up.CacheKey)
		}
		observability.DeferredUpdatesCompleted.WithLabelValues(up.Entity).Inc()
		u.logger.Info("deferred update completed",
			slog.String("entity", up.Entity),
			slog.Uint64("id", uint64(up.ID)),
			slog.String("column", up.Column),
		)
	}
}

// Wait blocks until all scheduled updates have finished. Used during graceful
// shutdown and by tests.
func (u *Updater) Wait() {
	u.wg.Wait()
}
