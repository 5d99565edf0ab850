package jobs_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/roles"
	"github.com/accessdesk/accessdesk/jobs"
)

func TestSnapshotHandlerBacksUpCollections(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	roleSvc := roles.NewService(st)
	require.NoError(t, roleSvc.EnsureSeeded(ctx))

	task, err := jobs.NewSnapshotTask(time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, jobs.TaskStoreSnapshot, task.Type())

	handler := jobs.SnapshotHandler(st, nil)
	require.NoError(t, handler(ctx, task))

	slot := time.Now().UTC().Format("20060102")
	backup := st.Raw("backup:" + slot + ":roles")
	require.NotEmpty(t, backup)

	var restored []roles.Role
	require.NoError(t, json.Unmarshal(backup, &restored))
	assert.Len(t, restored, 3)
}

func TestSnapshotHandlerSkipsMalformedPayload(t *testing.T) {
	handler := jobs.SnapshotHandler(store.NewMemoryStore(), nil)
	err := handler(context.Background(), asynq.NewTask(jobs.TaskStoreSnapshot, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
