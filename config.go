package main

import (
	"sync"

	"github.com/spf13/viper"
)

// Config holds the tunables that can change between games through the
// settings endpoint.
type Config struct {
	BoardSize       int     `json:"board_size"`
	TurnTimeMs      int     `json:"turn_time_ms"`
	SearchDepth     int     `json:"search_depth"`
	MaxDepth        int     `json:"max_depth"`
	Iterative       bool    `json:"iterative"`
	Method          string  `json:"method"`
	TimeoutMarginMs float64 `json:"timeout_margin_ms"`
	LogSearchStats  bool    `json:"log_search_stats"`
}

func DefaultConfig() Config {
	return Config{
		BoardSize:       7,
		TurnTimeMs:      1000,
		SearchDepth:     3,
		MaxDepth:        25,
		Iterative:       true,
		Method:          string(SearchAlphaBeta),
		TimeoutMarginMs: 10,
		LogSearchStats:  false,
	}
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func agentFromConfig(config Config) (*Agent, error) {
	return NewAgent(AgentConfig{
		SearchDepth:     config.SearchDepth,
		MaxDepth:        config.MaxDepth,
		Score:           ImprovedScore,
		Iterative:       config.Iterative,
		Method:          SearchMethod(config.Method),
		TimeoutMarginMs: config.TimeoutMarginMs,
	})
}

// ServerConfig is the process-level configuration read once at startup.
type ServerConfig struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
}

func LoadServerConfig(cfgPath string) (*ServerConfig, error) {
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	return &cfg, nil
}
