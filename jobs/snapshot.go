package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/accessdesk/accessdesk/internal/platform/store"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStoreSnapshot copies every collection into a timestamped backup.
	TaskStoreSnapshot = "store:snapshot"
)

// SnapshotPayload carries scheduling metadata.
type SnapshotPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSnapshotTask constructs an Asynq task for a store snapshot.
func NewSnapshotTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SnapshotPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStoreSnapshot, body, asynq.Queue(QueueDefault)), nil
}

// SnapshotHandler returns the handler that backs up all collections through
// the given store. The backup slot is named by the processing date, so a
// cron-registered task rolls one backup per day.
func SnapshotHandler(snap store.Snapshotter, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		slot := time.Now().UTC().Format("20060102")
		for _, collection := range []string{
			store.CollectionUsers,
			store.CollectionRoles,
			store.CollectionPermissions,
		} {
			if err := snap.Snapshot(ctx, collection, slot); err != nil {
				return err
			}
		}
		if logger != nil {
			logger.Info("store snapshot complete",
				slog.String("slot", slot),
				slog.Time("scheduled_for", payload.ScheduledFor))
		}
		return nil
	}
}
