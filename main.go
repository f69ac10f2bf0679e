package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pdf_studio/api"
	"pdf_studio/config"
	"pdf_studio/mcptools"
	"pdf_studio/pdf"
)

const (
	version = "0.1.0"

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", os.Getenv("PDF_STUDIO_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	studio := pdf.New(pdf.NewPdfcpuCodec(), logger).WithOutputPageLimit(cfg.MaxOutputPages)

	switch cfg.MCPTransport {
	case "":
		err = serveHTTP(ctx, cfg, studio, logger)
	case "stdio":
		err = serveMCP(ctx, cfg, studio, logger)
	default:
		err = fmt.Errorf("unknown MCP transport %q", cfg.MCPTransport)
	}
	if err != nil {
		logger.Error("exit", "error", err)
		os.Exit(1)
	}
}

func serveHTTP(ctx context.Context, cfg *config.Config, studio *pdf.Studio, logger *slog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger))
	r.MaxMultipartMemory = cfg.MaxFileSize

	results := api.NewResultStore(cfg.ResultTTL, cfg.ResultStoreBytes)
	defer results.Close()
	api.SetupRoutes(r, api.NewHandlers(studio, cfg, results, logger))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"addr", srv.Addr,
			"max_file_size", humanize.Bytes(uint64(cfg.MaxFileSize)),
			"max_files", cfg.MaxFiles,
			"max_output_pages", cfg.MaxOutputPages,
			"result_ttl", cfg.ResultTTL,
			"result_store", humanize.Bytes(uint64(cfg.ResultStoreBytes)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited gracefully")
	return nil
}

func serveMCP(ctx context.Context, cfg *config.Config, studio *pdf.Studio, logger *slog.Logger) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "pdf_studio", Version: version}, nil)
	mcptools.New(studio, cfg.MaxFileSize).Register(srv)

	logger.Info("MCP server on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}
