package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshAllRunsEveryRegisteredTask(t *testing.T) {
	r := NewRefresher("@every 5m")

	ran := map[string]int{}
	r.Register("categories", func(ctx context.Context) { ran["categories"]++ })
	r.Register("enquiries", func(ctx context.Context) { ran["enquiries"]++ })

	r.RefreshAll()
	r.RefreshAll()

	assert.Equal(t, 2, ran["categories"])
	assert.Equal(t, 2, ran["enquiries"])
}

func TestRefreshAllPassesALiveContext(t *testing.T) {
	r := NewRefresher("@every 5m")

	var deadlineSet bool
	r.Register("users", func(ctx context.Context) {
		_, deadlineSet = ctx.Deadline()
		require.NoError(t, ctx.Err())
	})

	r.RefreshAll()

	assert.True(t, deadlineSet, "refresh context should carry a timeout")
}

func TestStartFailsOnBadSchedule(t *testing.T) {
	r := NewRefresher("not a cron spec")
	err := r.Start()
	require.Error(t, err)
}
