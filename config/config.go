// =============================================================================
// 📦 Teamflow 配置
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("config.yaml").
//	    WithEnvPrefix("TEAMFLOW").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"time"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是 teamflow 的完整配置结构
type Config struct {
	// Server 服务器配置
	Server ServerConfig `yaml:"server"`

	// Scheduler 任务调度配置
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Stream 流注册表配置
	Stream StreamConfig `yaml:"stream"`

	// Log 日志配置
	Log LogConfig `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// 监听地址
	Addr string `yaml:"addr"`
	// Metrics 监听地址
	MetricsAddr string `yaml:"metrics_addr"`
	// 读取超时
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// 写入超时。SSE 是长连接推送，0 表示不限制；
	// 设置非零值会在超时后切断仍在推送的流。
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// 空闲超时
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// 优雅关闭超时
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SchedulerConfig 调度配置
type SchedulerConfig struct {
	// 每个团队图的监督者决策上限
	StepLimit int `yaml:"step_limit"`
	// 事件间平滑延迟（0 禁用）
	PaceInterval time.Duration `yaml:"pace_interval"`
	// 单节点结果切分除数
	NodeChunkDivisor int `yaml:"node_chunk_divisor"`
	// 最终汇总切分除数
	SummaryChunkDivisor int `yaml:"summary_chunk_divisor"`
	// 每片段最大词数
	MaxChunkTokens int `yaml:"max_chunk_tokens"`
}

// StreamConfig 流配置
type StreamConfig struct {
	// 每个流的队列缓冲大小
	QueueSize int `yaml:"queue_size"`
	// 消费端空轮询超时（期间重查连接存活）
	PollTimeout time.Duration `yaml:"poll_timeout"`
	// 任务最长允许输入字符数
	MaxTaskLength int `yaml:"max_task_length"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level"`
	// 输出格式: json, console
	Format string `yaml:"format"`
}

// =============================================================================
// 🔧 默认值与校验
// =============================================================================

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			MetricsAddr:     ":9090",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    0,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Scheduler: SchedulerConfig{
			StepLimit:           25,
			PaceInterval:        20 * time.Millisecond,
			NodeChunkDivisor:    10,
			SummaryChunkDivisor: 20,
			MaxChunkTokens:      5,
		},
		Stream: StreamConfig{
			QueueSize:     256,
			PollTimeout:   100 * time.Millisecond,
			MaxTaskLength: 5000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Scheduler.StepLimit <= 0 {
		return fmt.Errorf("scheduler.step_limit must be positive")
	}
	if c.Scheduler.NodeChunkDivisor <= 0 || c.Scheduler.SummaryChunkDivisor <= 0 {
		return fmt.Errorf("scheduler chunk divisors must be positive")
	}
	if c.Scheduler.MaxChunkTokens <= 0 {
		return fmt.Errorf("scheduler.max_chunk_tokens must be positive")
	}
	if c.Stream.QueueSize <= 0 {
		return fmt.Errorf("stream.queue_size must be positive")
	}
	if c.Stream.PollTimeout <= 0 {
		return fmt.Errorf("stream.poll_timeout must be positive")
	}
	if c.Stream.MaxTaskLength <= 0 {
		return fmt.Errorf("stream.max_task_length must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	return nil
}
