package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/phoneauth/internal/client/api"
	"github.com/iudanet/phoneauth/internal/client/auth"
	"github.com/iudanet/phoneauth/internal/client/cli"
	"github.com/iudanet/phoneauth/internal/client/config"
	"github.com/iudanet/phoneauth/internal/client/iocli"
	"github.com/iudanet/phoneauth/internal/client/refresh"
	"github.com/iudanet/phoneauth/internal/client/storage"
	"github.com/iudanet/phoneauth/internal/client/storage/boltdb"
	"github.com/iudanet/phoneauth/internal/client/storage/encrypted"
	"github.com/iudanet/phoneauth/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	io := iocli.NewStdio()
	if len(args) == 0 {
		cli.New(io, nil).PrintUsage()
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.Insecure() {
		logger.Warn("server URL uses plain HTTP, tokens are sent unencrypted", "server", cfg.ServerURL)
	}

	// Ctrl+C отменяет запросы и завершает watch
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	store, err := openTokenStore(ctx, boltStorage, cfg.StoragePassphrase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open token store: %v\n", err)
		return 1
	}

	apiClient := api.NewClient(cfg.ServerURL, store,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
	)
	ctrl := auth.NewController(apiClient, store, logger)
	apiClient.SetSessionExpiredHandler(ctrl.ExpireSession)

	// Монитор работает, пока сессия аутентифицирована
	monitor := refresh.NewMonitor(ctrl, store, logger)
	ctrl.Subscribe(func(prev, next auth.Session) {
		switch {
		case next.IsAuthenticated() && !prev.IsAuthenticated():
			monitor.Start(ctx)
		case !next.IsAuthenticated() && prev.IsAuthenticated():
			monitor.Stop()
		}
	})
	// Проверка должна завершиться до закрытия базы
	defer func() {
		monitor.Stop()
		monitor.Wait()
	}()

	if err := ctrl.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		return 1
	}

	if err := cli.New(io, ctrl).Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openTokenStore включает шифрование токенов, если задана парольная фраза
func openTokenStore(ctx context.Context, bolt *boltdb.Storage, passphrase string) (storage.TokenStore, error) {
	if passphrase == "" {
		return bolt, nil
	}

	salt, err := bolt.GetOrCreateSalt(ctx)
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveStorageKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive storage key: %w", err)
	}
	return encrypted.New(bolt, key)
}

func printVersion() {
	fmt.Printf("PhoneAuth Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
