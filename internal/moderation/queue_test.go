package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQueue(client, "test:reports"), mr
}

func TestQueueFIFO(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, q.Push(ctx, Item{PostID: "post-1", SessionID: "s1", ReporterID: "u1", ReportedAt: at}))
	require.NoError(t, q.Push(ctx, Item{PostID: "post-2", ReportedAt: at}))
	require.NoError(t, q.Push(ctx, Item{PostID: "post-1", ReportedAt: at}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.True(t, mr.Exists("test:reports"))

	cnt, err := q.ReportCount(ctx, "post-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)

	it, ok, err := q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "post-1", it.PostID)
	assert.Equal(t, "u1", it.ReporterID)
	assert.True(t, at.Equal(it.ReportedAt))

	it, ok, err = q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "post-2", it.PostID)
}

func TestQueueEmpty(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	_, ok, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	cnt, err := q.ReportCount(ctx, "nothing")
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestQueueDefaultKey(t *testing.T) {
	assert.Equal(t, "hostelbuzz:reports", NewQueue(nil, "").Key())
}
