package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentstack/internal/config"
	"agentstack/internal/metrics"
	"agentstack/internal/route"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 5 * time.Second

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	handler    *SiteHandler
	engine     *gin.Engine
	httpServer *http.Server
	opsServer  *http.Server

	ready    chan struct{}
	listener net.Listener
}

// New は新しいServerインスタンスを作成する
// mがnilの場合、メトリクスは記録されず運用リスナーも起動しない
func New(cfg *config.Config, table *route.Table, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:  cfg,
		handler: &SiteHandler{table: table, metrics: m, readFile: os.ReadFile},
		ready:   make(chan struct{}),
	}

	s.engine = s.newSiteEngine()
	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Metrics.Addr != "" && m != nil {
		s.opsServer = &http.Server{
			Addr:        cfg.Metrics.Addr,
			Handler:     s.newOpsEngine(m),
			ReadTimeout: cfg.Server.ReadTimeout,
		}
	}

	return s
}

// newSiteEngine は公開用のルーターを作成する
// アクセスログのミドルウェアは付けない
func (s *Server) newSiteEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	engine.GET("/*path", s.handler.ServeSite)

	return engine
}

// newOpsEngine は運用向けのルーターを作成する
func (s *Server) newOpsEngine(m *metrics.Metrics) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/metrics", gin.WrapH(m.Handler()))
	engine.GET("/healthz", s.handler.HealthCheck)

	return engine
}

// Handler は公開用のhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Ready はリッスン開始後にクローズされるチャンネルを返す
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr は実際にリッスンしているアドレスを返す（Ready後のみ有効）
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	lc := listenConfig(s.config.Server.ReuseAddr)
	ln, err := lc.Listen(ctx, "tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	s.listener = ln
	close(s.ready)

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 2)

	// サーバーを別ゴルーチンで起動
	go func() {
		log.Printf("HTTPサーバーを起動しています: %s (ルート数: %d)", ln.Addr(), s.handler.table.Len())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	if s.opsServer != nil {
		go func() {
			log.Printf("運用リスナーを起動しています: %s", s.opsServer.Addr)
			if err := s.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				shutdownCh <- fmt.Errorf("運用リスナーの起動に失敗: %w", err)
			}
		}()
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return errors.Join(err, s.Shutdown())
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("サーバーのシャットダウンに失敗: %w", err))
	}
	if s.opsServer != nil {
		if err := s.opsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("運用リスナーのシャットダウンに失敗: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
