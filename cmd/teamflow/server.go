package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BaSui01/teamflow/api/handlers"
	"github.com/BaSui01/teamflow/config"
	"github.com/BaSui01/teamflow/internal/metrics"
	"github.com/BaSui01/teamflow/internal/server"
	"github.com/BaSui01/teamflow/scheduler"
	"github.com/BaSui01/teamflow/stream"
	"github.com/BaSui01/teamflow/team"
	"github.com/BaSui01/teamflow/workers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// 🖥️ Server 结构
// =============================================================================

// Server 是 Teamflow 的主服务器
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	// 服务器管理器
	httpManager    *server.Manager
	metricsManager *server.Manager

	// 执行层
	hierarchy *team.Hierarchy
	sched     *scheduler.Scheduler
	streams   *stream.Manager

	// Handlers
	chatHandler   *handlers.ChatHandler
	healthHandler *handlers.HealthHandler
	agentsHandler *handlers.AgentsHandler

	// 指标收集器
	metricsCollector *metrics.Collector
}

// NewServer 创建新的服务器实例
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
	}
}

// =============================================================================
// 🚀 启动流程
// =============================================================================

// Start 启动所有服务
func (s *Server) Start() error {
	// 1. 初始化指标收集器
	s.metricsCollector = metrics.NewCollector("teamflow", s.logger)

	// 2. 装配执行层与 Handlers
	if err := s.initPipeline(); err != nil {
		return fmt.Errorf("failed to init pipeline: %w", err)
	}

	// 3. 启动 HTTP 服务器
	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	// 4. 启动 Metrics 服务器
	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.logger.Info("All servers started",
		zap.String("http_addr", s.cfg.Server.Addr),
		zap.String("metrics_addr", s.cfg.Server.MetricsAddr),
	)

	return nil
}

// =============================================================================
// 🔧 初始化方法
// =============================================================================

// initPipeline 装配层级团队、调度器、流注册表和 handlers
func (s *Server) initPipeline() error {
	hierarchy, err := workers.BuildDefaultHierarchy(
		workers.RuleDeciderFactory(),
		s.cfg.Scheduler.StepLimit,
		s.logger,
	)
	if err != nil {
		return fmt.Errorf("build hierarchy: %w", err)
	}
	s.hierarchy = hierarchy

	s.sched = scheduler.New(hierarchy, scheduler.Config{
		PaceInterval:        s.cfg.Scheduler.PaceInterval,
		NodeChunkDivisor:    s.cfg.Scheduler.NodeChunkDivisor,
		SummaryChunkDivisor: s.cfg.Scheduler.SummaryChunkDivisor,
		MaxChunkTokens:      s.cfg.Scheduler.MaxChunkTokens,
	}, s.logger)

	s.streams = stream.NewManager(s.cfg.Stream.QueueSize, s.metricsCollector, s.logger)

	s.chatHandler = handlers.NewChatHandler(
		s.sched,
		scheduler.NewKeywordPlanner(),
		s.streams,
		s.metricsCollector,
		handlers.Config{
			PollTimeout:   s.cfg.Stream.PollTimeout,
			MaxTaskLength: s.cfg.Stream.MaxTaskLength,
		},
		s.logger,
	)
	s.healthHandler = handlers.NewHealthHandler(Version, s.streams)
	s.agentsHandler = handlers.NewAgentsHandler(hierarchy)

	s.logger.Info("Pipeline initialized", zap.Int("hierarchy_depth", hierarchy.Depth()))
	return nil
}

// =============================================================================
// 🌐 HTTP 服务器
// =============================================================================

// startHTTPServer 启动 HTTP 服务器
func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth)

	// API 路由
	mux.HandleFunc("POST /chat", s.chatHandler.HandleChat)
	mux.HandleFunc("POST /stream-chat", s.chatHandler.HandleStreamChat)
	mux.HandleFunc("GET /ws-chat", s.chatHandler.HandleWSChat)
	mux.HandleFunc("GET /agents", s.agentsHandler.HandleAgents)

	// 构建中间件链
	handler := Chain(mux,
		Recovery(s.logger),
		RequestID(),
		RequestLogger(s.logger),
		CORS(nil),
		MetricsMiddleware(s.metricsCollector),
	)

	serverConfig := server.Config{
		Addr:            s.cfg.Server.Addr,
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout, // SSE 推送要求 0
		IdleTimeout:     s.cfg.Server.IdleTimeout,
		MaxHeaderBytes:  1 << 20, // 1 MB
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.httpManager = server.NewManager(handler, serverConfig, s.logger)

	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.String("addr", s.cfg.Server.Addr))
	return nil
}

// =============================================================================
// 📊 Metrics 服务器
// =============================================================================

// startMetricsServer 启动 Metrics 服务器
func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	serverConfig := server.DefaultConfig()
	serverConfig.Addr = s.cfg.Server.MetricsAddr

	s.metricsManager = server.NewManager(mux, serverConfig, s.logger)

	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("Metrics server started", zap.String("addr", s.cfg.Server.MetricsAddr))
	return nil
}

// =============================================================================
// 🛑 关闭流程
// =============================================================================

// WaitForShutdown 等待关闭信号或任一监听端口异常退出，然后优雅停机。
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-s.httpManager.Errors():
		s.logger.Error("HTTP server exited unexpectedly", zap.Error(err))
	case err := <-s.metricsManager.Errors():
		s.logger.Error("metrics server exited unexpectedly", zap.Error(err))
	}

	if err := s.Stop(context.Background()); err != nil {
		s.logger.Error("shutdown error", zap.Error(err))
	}
}

// Stop 并发关闭业务与指标两个监听端口
func (s *Server) Stop(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.httpManager.Shutdown(gctx) })
	g.Go(func() error { return s.metricsManager.Shutdown(gctx) })
	return g.Wait()
}
