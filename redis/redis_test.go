package redis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisConfigFromJSON(t *testing.T) {
	raw := `{"host": "redis.internal", "port": 6380, "password": "secret", "namespace": "capture"}`

	var config RedisConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &config))
	require.Equal(t, RedisConfig{
		Host:      "redis.internal",
		Port:      6380,
		Password:  "secret",
		Namespace: "capture",
	}, config)
}

func TestRedisSentinelConfigFromJSON(t *testing.T) {
	raw := `{
		"sentinel_host": "sentinel.internal",
		"sentinel_port": 26379,
		"master_name": "mymaster",
		"sentinel_username": "svc",
		"namespace": "capture"
	}`

	var config RedisSentinelConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &config))
	require.Equal(t, RedisSentinelConfig{
		SentinelHost:     "sentinel.internal",
		SentinelPort:     26379,
		MasterName:       "mymaster",
		SentinelUsername: "svc",
		Namespace:        "capture",
	}, config)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	tests := []struct {
		name   string
		config RedisConfig
	}{
		{"unknown host", RedisConfig{Host: "redis-host-that-does-not-exist", Port: 6379}},
		{"port out of range", RedisConfig{Host: "localhost", Port: 99999}},
		{"zero config", RedisConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisClient(&tt.config)
			require.Error(t, err)
			require.Nil(t, client)
			require.Contains(t, err.Error(), "failed to connect to Redis")
		})
	}
}

func TestNewRedisSentinelClientUnreachable(t *testing.T) {
	tests := []struct {
		name   string
		config RedisSentinelConfig
	}{
		{"unknown host", RedisSentinelConfig{
			SentinelHost: "sentinel-host-that-does-not-exist",
			SentinelPort: 26379,
			MasterName:   "mymaster",
		}},
		{"port out of range", RedisSentinelConfig{
			SentinelHost: "localhost",
			SentinelPort: 99999,
			MasterName:   "mymaster",
		}},
		{"missing master name", RedisSentinelConfig{
			SentinelHost: "localhost",
			SentinelPort: 26379,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisSentinelClient(&tt.config)
			require.Error(t, err)
			require.Nil(t, client)
			require.Contains(t, err.Error(), "failed to connect to Redis through Sentinel")
		})
	}
}
