package pending

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
)

func TestSetAndGetViaRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := New(rdb, 30*time.Minute)

	cell := booking.PendingCell{AmountDueCents: 13500}
	mock.ExpectSet("pending:7", []byte(`{"amount_due_cents":13500}`), 30*time.Minute).SetVal("OK")
	require.NoError(t, s.Set(context.Background(), 7, cell))

	mock.ExpectGet("pending:7").SetVal(`{"amount_due_cents":13500}`)
	got, found, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(13500), got.AmountDueCents)
	assert.Nil(t, got.DeltaCents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCarriesDelta(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := New(rdb, 30*time.Minute)

	mock.ExpectGet("pending:7").SetVal(`{"amount_due_cents":22500,"delta_cents":9000}`)
	got, found, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(22500), got.AmountDueCents)
	require.NotNil(t, got.DeltaCents)
	assert.Equal(t, int64(9000), *got.DeltaCents)
}

func TestGetMissingCell(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := New(rdb, time.Minute)

	mock.ExpectGet("pending:7").RedisNil()
	_, found, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClearViaRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	s := New(rdb, time.Minute)

	mock.ExpectDel("pending:7").SetVal(1)
	require.NoError(t, s.Clear(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryFallbackWithoutRedis(t *testing.T) {
	s := New(nil, time.Minute)
	ctx := context.Background()

	_, found, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, 7, booking.PendingCell{AmountDueCents: 4500}))
	got, found, err := s.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(4500), got.AmountDueCents)

	require.NoError(t, s.Clear(ctx, 7))
	_, found, err = s.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryFallbackHonorsTTL(t *testing.T) {
	s := New(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, 7, booking.PendingCell{AmountDueCents: 4500}))

	// Force the entry past its expiry instead of sleeping.
	s.mu.Lock()
	mc := s.mem[7]
	mc.expiresAt = time.Now().Add(-time.Second)
	s.mem[7] = mc
	s.mu.Unlock()

	_, found, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
}
