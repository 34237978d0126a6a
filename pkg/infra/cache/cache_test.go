package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/selira/modguard/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBanStatus(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, time.Minute)

	status := &account.BanStatus{
		Identity:  "user@test.com",
		IsBanned:  true,
		BanReason: "Immediate ban: CSAM",
	}
	raw, err := json.Marshal(status)
	require.NoError(t, err)

	mock.ExpectGet("modguard:ban_status:user@test.com").SetVal(string(raw))

	got, err := cache.GetBanStatus(context.Background(), "user@test.com")
	require.NoError(t, err)
	assert.Equal(t, status, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBanStatus_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, time.Minute)

	mock.ExpectGet("modguard:ban_status:user@test.com").RedisNil()

	_, err := cache.GetBanStatus(context.Background(), "user@test.com")
	assert.ErrorIs(t, err, redis.Nil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBanStatus_CorruptEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, time.Minute)

	mock.ExpectGet("modguard:ban_status:user@test.com").SetVal("not json")

	_, err := cache.GetBanStatus(context.Background(), "user@test.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestSaveBanStatus(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, time.Minute)

	status := &account.BanStatus{Identity: "user@test.com"}
	raw, err := json.Marshal(status)
	require.NoError(t, err)

	mock.ExpectSet("modguard:ban_status:user@test.com", string(raw), time.Minute).SetVal("OK")

	require.NoError(t, cache.SaveBanStatus(context.Background(), status))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBanStatus_DefaultTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, 0)

	status := &account.BanStatus{Identity: "user@test.com"}
	raw, err := json.Marshal(status)
	require.NoError(t, err)

	mock.ExpectSet("modguard:ban_status:user@test.com", string(raw), DefaultBanStatusTTL).SetVal("OK")

	require.NoError(t, cache.SaveBanStatus(context.Background(), status))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateBanStatus(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCacheWithClient(client, time.Minute)

	mock.ExpectDel("modguard:ban_status:user@test.com").SetVal(1)

	require.NoError(t, cache.InvalidateBanStatus(context.Background(), "user@test.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
