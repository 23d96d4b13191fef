package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/rank-tags/app/api"
	"github.com/lysyi3m/rank-tags/app/cfg"
	"github.com/lysyi3m/rank-tags/app/tagger"
	"github.com/lysyi3m/rank-tags/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	rules, err := tagger.LoadRules(appCfg.RulesFile)
	if err != nil {
		slog.Error("Failed to load classification rules", "path", appCfg.RulesFile, "error", err)
		os.Exit(1)
	}
	rowTagger := tagger.NewTagger(tagger.NewClassifier(rules))

	if appCfg.OneShot() {
		if err := runOnce(appCfg, rowTagger); err != nil {
			slog.Error("Tagging failed", "input", appCfg.Input, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(appCfg, rules, rowTagger); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Logs go to stderr so stdout stays clean for CSV output in one-shot mode
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runOnce(appCfg *cfg.Cfg, rowTagger *tagger.Tagger) error {
	display := os.Stdout
	if appCfg.Output == "" || appCfg.Output == "-" {
		display = os.Stderr
	}

	source := tasks.NewFileSource(appCfg.Input)
	sink := tasks.NewFileSink(display, appCfg.Output)
	task := tasks.NewTagTask(tasks.TaskTypeTagFile, source, sink, rowTagger, appCfg.DownloadName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tasks.Run(ctx, task)
}

func serve(appCfg *cfg.Cfg, rules tagger.Rules, rowTagger *tagger.Tagger) error {
	slog.Info("Starting rank-tags server", "version", appCfg.Version)

	handler := api.NewHandler(rowTagger, rules, appCfg.DownloadName, appCfg.MaxUploadSize, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		baseURL := appCfg.BaseUrl
		if baseURL == "" {
			baseURL = "http://localhost:" + appCfg.Port
		}
		slog.Info("HTTP server listening",
			"port", appCfg.Port,
			"upload", baseURL+"/",
			"api", baseURL+"/api/tags",
			"api_auth", appCfg.APIAccessKey != "")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		return err
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	slog.Info("Server shutdown complete")
	return nil
}
