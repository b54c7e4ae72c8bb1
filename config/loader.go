package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// 📥 配置加载器
// =============================================================================

// Loader 配置加载器
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{envPrefix: "TEAMFLOW"}
}

// WithConfigPath 指定 YAML 配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 指定环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load 加载配置：默认值 → YAML 文件 → 环境变量
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", l.configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", l.configPath, err)
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv 应用环境变量覆盖
func (l *Loader) applyEnv(cfg *Config) {
	l.envString("SERVER_ADDR", &cfg.Server.Addr)
	l.envString("SERVER_METRICS_ADDR", &cfg.Server.MetricsAddr)
	l.envDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	l.envDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	l.envDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	l.envDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	l.envInt("SCHEDULER_STEP_LIMIT", &cfg.Scheduler.StepLimit)
	l.envDuration("SCHEDULER_PACE_INTERVAL", &cfg.Scheduler.PaceInterval)
	l.envInt("SCHEDULER_NODE_CHUNK_DIVISOR", &cfg.Scheduler.NodeChunkDivisor)
	l.envInt("SCHEDULER_SUMMARY_CHUNK_DIVISOR", &cfg.Scheduler.SummaryChunkDivisor)
	l.envInt("SCHEDULER_MAX_CHUNK_TOKENS", &cfg.Scheduler.MaxChunkTokens)

	l.envInt("STREAM_QUEUE_SIZE", &cfg.Stream.QueueSize)
	l.envDuration("STREAM_POLL_TIMEOUT", &cfg.Stream.PollTimeout)
	l.envInt("STREAM_MAX_TASK_LENGTH", &cfg.Stream.MaxTaskLength)

	l.envString("LOG_LEVEL", &cfg.Log.Level)
	l.envString("LOG_FORMAT", &cfg.Log.Format)
}

func (l *Loader) envString(key string, target *string) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok && v != "" {
		*target = v
	}
}

func (l *Loader) envInt(key string, target *int) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*target = parsed
		}
	}
}

func (l *Loader) envDuration(key string, target *time.Duration) {
	if v, ok := os.LookupEnv(l.envPrefix + "_" + key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*target = parsed
		}
	}
}
