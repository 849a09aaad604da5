package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	j := New("data-processing", map[string]interface{}{"items": []interface{}{1, 2}})
	after := time.Now().UTC()

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, "data-processing", j.Type)
	assert.Equal(t, StatusPending, j.Status)
	assert.Equal(t, 0, j.RetryCount)
	assert.Nil(t, j.StartedAt)
	assert.Nil(t, j.CompletedAt)
	assert.Nil(t, j.Result)
	assert.Empty(t, j.Error)
	assert.False(t, j.CreatedAt.Before(before))
	assert.False(t, j.CreatedAt.After(after))
}

func TestNew_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		j := New("export", nil)
		require.False(t, seen[j.ID], "duplicate id %s", j.ID)
		seen[j.ID] = true
	}
}

func TestJob_Clone(t *testing.T) {
	j := New("export", "payload")
	started := time.Now().UTC()
	j.StartedAt = &started
	j.Status = StatusRunning

	cp := j.Clone()

	assert.Equal(t, j.ID, cp.ID)
	assert.Equal(t, j.Status, cp.Status)
	require.NotNil(t, cp.StartedAt)
	assert.Equal(t, *j.StartedAt, *cp.StartedAt)

	// Mutating the clone must not touch the original.
	cp.Status = StatusCompleted
	*cp.StartedAt = cp.StartedAt.Add(time.Hour)
	assert.Equal(t, StatusRunning, j.Status)
	assert.Equal(t, started, *j.StartedAt)
}

func TestJob_Finished(t *testing.T) {
	tests := []struct {
		status   Status
		finished bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			j := New("export", nil)
			j.Status = tt.status
			assert.Equal(t, tt.finished, j.Finished())
		})
	}
}

func TestJob_Terminal(t *testing.T) {
	j := New("export", nil)
	j.Status = StatusFailed
	assert.False(t, j.Terminal(), "failed without CompletedAt is awaiting retry")

	now := time.Now().UTC()
	j.CompletedAt = &now
	assert.True(t, j.Terminal())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusRunning.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusFailed.Valid())
	assert.False(t, Status("queued").Valid())
	assert.False(t, Status("").Valid())
}
