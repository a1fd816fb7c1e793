package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"vault-cap-monitor/internal/config"
	"vault-cap-monitor/internal/logfields"
	"vault-cap-monitor/internal/metrics"
	"vault-cap-monitor/internal/monitor"
	"vault-cap-monitor/internal/notify"
	"vault-cap-monitor/internal/vault"
)

var CLI struct {
	Config  string `short:"c" help:"Optional YAML configuration file" type:"path"`
	EnvFile string `help:"Env file loaded before reading the environment" default:".env"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("vault-cap-monitor"),
		kong.Description("Watch a vault's deposit cap and report every change."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	if err := config.LoadDotEnv(CLI.EnvFile); err != nil {
		slog.Error("Failed to load env file", logfields.Error(err))
		os.Exit(1)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil && ctx.Err() == nil {
		slog.Error("Monitor stopped", logfields.Error(err))
		cancel()
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

func run(ctx context.Context, cfg *config.Config) error {
	address, err := vault.ParseAddress(cfg.VaultAddress)
	if err != nil {
		return err
	}

	ethClient, chainID, err := vault.Connect(ctx, cfg.RPCURL, cfg.ConnectTimeout.Duration())
	if err != nil {
		return err
	}
	defer ethClient.Close()
	slog.Info("Connected to RPC endpoint", slog.String("rpc", cfg.RPCURL), logfields.ChainID(chainID.String()))

	reader, err := vault.NewReader(ethClient, address)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(cfg.MetricsAddr, reg)
		defer stop()
	}

	dispatcher := notify.NewDispatcher(notify.NewConsoleNotifier(os.Stdout), buildNotifiers(cfg)...).
		WithRecorder(recorder)
	if dispatcher.Channels() == 0 {
		slog.Info("No webhook configured; cap changes will only be written to stdout")
	}

	service, err := monitor.NewService(reader, dispatcher, cfg.CheckInterval.Duration(),
		monitor.WithRecorder(recorder),
		monitor.WithVaultAddress(reader.Address().Hex()),
		monitor.WithSymbols(notify.Symbols{Asset: cfg.AssetSymbol, Share: cfg.ShareSymbol}))
	if err != nil {
		return err
	}

	slog.Info("Vault cap monitor started",
		logfields.Vault(address.Hex()),
		logfields.Interval(cfg.CheckInterval.Duration().String()))

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Stopping monitor")
	return nil
}

func buildNotifiers(cfg *config.Config) []notify.Notifier {
	notifiers := make([]notify.Notifier, 0, 2)
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.WebhookURL))
	}
	if cfg.TelegramEnabled() {
		notifiers = append(notifiers, notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	return notifiers
}

func serveMetrics(addr string, reg *prom.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
