package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zhouzirui/f1-api/backend/internal/service/dataset"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Cache  CacheConfig
	Live   LiveConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	data, err := loadDataConfig()
	if err != nil {
		return nil, err
	}

	cache, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}

	live, err := loadLiveConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Data: data, Cache: cache, Live: live}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	MetricsEnabled bool
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	metrics, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return ServerConfig{}, err
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "10000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":10000" 或 "127.0.0.1:10000"。
		return ServerConfig{Addr: port, MetricsEnabled: metrics}, nil
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, MetricsEnabled: metrics}, nil
}

// DataConfig 描述数据文件位置。
type DataConfig struct {
	Dir              string
	DriversFile      string
	ConstructorsFile string
	TeamIndexFile    string
	RacesFile        string
	DefaultSeason    int
}

// Dataset 转换为数据加载器的配置。
func (c DataConfig) Dataset() dataset.Config {
	return dataset.Config{
		Files: dataset.Files{
			Dir:          c.Dir,
			Drivers:      c.DriversFile,
			Constructors: c.ConstructorsFile,
			TeamIndex:    c.TeamIndexFile,
			Races:        c.RacesFile,
		},
		DefaultSeason: c.DefaultSeason,
	}
}

func loadDataConfig() (DataConfig, error) {
	season := 2025
	if override, err := parseOptionalIntEnv("DEFAULT_SEASON"); err != nil {
		return DataConfig{}, err
	} else if override != nil {
		if *override < 1950 {
			return DataConfig{}, fmt.Errorf("invalid DEFAULT_SEASON value %d", *override)
		}
		season = *override
	}

	return DataConfig{
		Dir:              getEnvOrDefault("DATA_DIR", "."),
		DriversFile:      getEnvOrDefault("DRIVERS_FILE", "F1_Drivers.json"),
		ConstructorsFile: getEnvOrDefault("CONSTRUCTORS_FILE", "F1_Teams.json"),
		TeamIndexFile:    getEnvOrDefault("TEAM_INDEX_FILE", "F1_TeamIndex.json"),
		RacesFile:        getEnvOrDefault("RACES_FILE", "F1_GrandRaces.json"),
		DefaultSeason:    season,
	}, nil
}

// CacheConfig 描述 HTTP 缓存头配置。
type CacheConfig struct {
	MaxAge      time.Duration
	ETagEnabled bool
}

func loadCacheConfig() (CacheConfig, error) {
	maxAge := 300
	if override, err := parseOptionalIntEnv("CACHE_MAX_AGE"); err != nil {
		return CacheConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return CacheConfig{}, fmt.Errorf("invalid CACHE_MAX_AGE value %d", *override)
		}
		maxAge = *override
	}

	etag, err := parseBoolEnv("ETAG_ENABLED", true)
	if err != nil {
		return CacheConfig{}, err
	}

	return CacheConfig{
		MaxAge:      time.Duration(maxAge) * time.Second,
		ETagEnabled: etag,
	}, nil
}

// LiveConfig 描述实时推送（WebSocket / SSE）配置。
type LiveConfig struct {
	HeartbeatInterval time.Duration
}

func loadLiveConfig() (LiveConfig, error) {
	interval, err := parseDurationEnv("HEARTBEAT_INTERVAL", 15*time.Second)
	if err != nil {
		return LiveConfig{}, err
	}
	if interval <= 0 {
		return LiveConfig{}, fmt.Errorf("invalid HEARTBEAT_INTERVAL value %s", interval)
	}
	return LiveConfig{HeartbeatInterval: interval}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	// 纯数字按秒处理。
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
