package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runtime/debug"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/uma-arai/hotel-dashboard/internal/common/config"
	"github.com/uma-arai/hotel-dashboard/internal/common/database"
	"github.com/uma-arai/hotel-dashboard/internal/format"
	"github.com/uma-arai/hotel-dashboard/internal/handler"
	"github.com/uma-arai/hotel-dashboard/internal/repository"
	"github.com/uma-arai/hotel-dashboard/internal/router"
	"github.com/uma-arai/hotel-dashboard/internal/service/dashboard"
)

const (
	projectName     = "hotel-dashboard"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// 設定の読み込み（Webサーバーではタスクトークンを使わない）
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v\nStack trace:\n%s", err, debug.Stack())
	}
	format.SetLocation(cfg.DisplayLocation)

	// X-Ray設定
	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     "127.0.0.1:2000", // X-Rayデーモンのアドレス
			ServiceVersion: "1.0.0",
		}); err != nil {
			log.Printf("Failed to configure X-Ray: %v", err)
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database connection: %v\nStack trace:\n%s", err, debug.Stack())
	}
	store := repository.NewSQLStore(&repository.DB{DB: db.DB})
	service := dashboard.NewServiceFromStore(store)

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.EnableTracing {
		e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
			return xray.Handler(xray.NewFixedSegmentNamer(projectName), next)
		}))
	}

	router.RegisterRoutes(e)
	router.RegisterDashboard(e, handler.NewDashboardHandler(service))

	addr := ":" + cfg.App.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.App.Env)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// シグナルハンドリングの設定
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown server: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
