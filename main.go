package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-identity-capture/logging"
	"go-identity-capture/pixels"
	"go-identity-capture/quality"
	redis "go-identity-capture/redis"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	JwtPrivateKeyPath       string `json:"jwt_private_key_path"`
	EvidenceIssuer          string `json:"evidence_issuer"`
	EvidenceValidityMinutes int    `json:"evidence_validity_minutes,omitempty"`

	LandmarkProviderUrl string `json:"landmark_provider_url,omitempty"`

	ChallengeCount    int `json:"challenge_count,omitempty"`
	SessionTtlMinutes int `json:"session_ttl_minutes,omitempty"`
	AnalysisWidth     int `json:"analysis_width,omitempty"`

	StorageType         string                    `json:"storage_type"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

const defaultChallengeCount = 3
const defaultEvidenceValidity = 15 * time.Minute

func main() {
	configPath := flag.String("config", "", "Path for the config.json to use")
	flag.Parse()

	if *configPath == "" {
		fatal("please provide a config path using the --config flag", nil)
	}

	config, err := readConfigFile(*configPath)
	if err != nil {
		fatal("failed to read config file", err)
	}

	logging.InitLogger(config.LogLevel, config.LogFormat)
	slog.Info("Using config", "path", *configPath)
	slog.Info("Hosting on", "host", config.ServerConfig.Host, "port", config.ServerConfig.Port)

	validity := defaultEvidenceValidity
	if config.EvidenceValidityMinutes > 0 {
		validity = time.Duration(config.EvidenceValidityMinutes) * time.Minute
	}

	evidenceSigner, err := NewRS256EvidenceSigner(config.JwtPrivateKeyPath, config.EvidenceIssuer, validity)
	if err != nil {
		fatal("failed to instantiate evidence signer", err)
	}

	sessionStorage, err := createSessionStorage(&config)
	if err != nil {
		fatal("failed to instantiate session storage", err)
	}

	challengeCount := config.ChallengeCount
	if challengeCount <= 0 {
		challengeCount = defaultChallengeCount
	}

	sessionTTL := SessionTimeout
	if config.SessionTtlMinutes > 0 {
		sessionTTL = time.Duration(config.SessionTtlMinutes) * time.Minute
	}

	analysisWidth := config.AnalysisWidth
	if analysisWidth <= 0 {
		analysisWidth = pixels.DefaultAnalysisWidth
	}

	var landmarkClient LandmarkClient
	if config.LandmarkProviderUrl != "" {
		slog.Info("Using landmark provider", "url", config.LandmarkProviderUrl)
		landmarkClient = NewHTTPLandmarkClient(config.LandmarkProviderUrl)
	} else {
		slog.Info("No landmark provider configured, clients have to supply landmarks themselves")
	}

	serverState := ServerState{
		sessionStorage:  sessionStorage,
		livenessManager: NewLivenessManager(challengeCount, sessionTTL),
		landmarkClient:  landmarkClient,
		evidenceSigner:  evidenceSigner,
		qualityChecker:  quality.NewValidator(quality.DefaultThresholds()),
		analysisWidth:   analysisWidth,
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		fatal("failed to create server", err)
	}

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals
		slog.Info("Received shutdown signal", "signal", sig.String())
		if err := server.Stop(); err != nil {
			os.Exit(1)
		}
	}()

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fatal("failed to listen and serve", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)

	if err != nil {
		return Config{}, err
	}

	var config Config
	err = json.Unmarshal(configBytes, &config)

	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func createSessionStorage(config *Config) (SessionStorage, error) {
	if config.StorageType == "redis" {
		slog.Info("Using redis session storage")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisSessionStorage(client, config.RedisConfig.Namespace), nil
	}
	if config.StorageType == "redis_sentinel" {
		slog.Info("Using redis sentinel session storage")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisSessionStorage(client, config.RedisSentinelConfig.Namespace), nil
	}
	if config.StorageType == "memory" {
		slog.Info("Using in memory session storage")
		return NewInMemorySessionStorage(), nil
	}
	return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
}
