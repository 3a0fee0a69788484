// Package job holds background jobs run on a cron schedule.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

// RefSource lists the attachment paths records still point at.
type RefSource interface {
	AttachmentRefs(ctx context.Context) ([]string, error)
}

// OrphanSweepJob deletes stored attachments that no record references and
// that are older than the grace period. The grace period keeps files whose
// record is still being written.
type OrphanSweepJob struct {
	refs    RefSource
	backend storage.Backend
	grace   time.Duration
	timeout time.Duration
	logger  logging.Logger
	now     func() time.Time
}

func NewOrphanSweepJob(refs RefSource, b storage.Backend, grace time.Duration, l logging.Logger) *OrphanSweepJob {
	return &OrphanSweepJob{
		refs:    refs,
		backend: b,
		grace:   grace,
		timeout: 5 * time.Minute,
		logger:  l.With("module", "orphan_sweep"),
		now:     time.Now,
	}
}

// Run implements cron.Job.
func (j *OrphanSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.Sweep(ctx)
	if err != nil {
		j.logger.Error(ctx, "orphan sweep failed", "error", err, "deleted", n)
		return
	}
	if n > 0 {
		j.logger.Info(ctx, "orphan sweep finished", "deleted", n)
	}
}

// Sweep performs one pass and returns how many objects it deleted.
func (j *OrphanSweepJob) Sweep(ctx context.Context) (int, error) {
	refs, err := j.refs.AttachmentRefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list references: %w", err)
	}
	live := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if key, ok := storage.KeyFromPublicPath(ref); ok {
			live[key] = struct{}{}
		}
	}

	objects, err := j.backend.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list objects: %w", err)
	}

	cutoff := j.now().Add(-j.grace)
	deleted := 0
	for _, obj := range objects {
		if _, ok := live[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if err := j.backend.Delete(ctx, obj.Key); err != nil {
			j.logger.Warn(ctx, "orphan delete failed", "key", obj.Key, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
