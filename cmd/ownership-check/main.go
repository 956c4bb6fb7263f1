package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/bootstrap"
	"github.com/feral-file/ff-ownership-resolver/internal/config"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	owner      = flag.String("owner", "", "Owner address")
	names      = flag.String("names", "", "Comma-separated names to check")
	items      = flag.String("items", "", "Comma-separated item URNs to check")
	timestamp  = flag.Int64("timestamp", 0, "Unix time in milliseconds, defaults to now")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *owner == "" {
		return fmt.Errorf("-owner is required")
	}
	if (*names == "") == (*items == "") {
		return fmt.Errorf("exactly one of -names or -items is required")
	}

	at := time.Now().UTC()
	if *timestamp != 0 {
		t, err := domain.UnixMilli(*timestamp)
		if err != nil {
			return err
		}
		at = t
	}

	config.ChdirRepoRoot()
	cfg, err := config.LoadCheckConfig(*configFile, *envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "ownership-check",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, cleanup, err := bootstrap.NewOwnershipClient(ctx, cfg.Resolver, bootstrap.DefaultDependencies(cfg.Resolver))
	if err != nil {
		return err
	}
	defer cleanup()

	var result domain.OwnershipResult
	if *names != "" {
		result, err = client.OwnsNamesAtTimestamp(ctx, domain.OwnerAddress(*owner), splitList(*names), at)
	} else {
		result, err = client.OwnsItemsAtTimestamp(ctx, domain.OwnerAddress(*owner), splitList(*items), at)
	}
	if err != nil {
		return fmt.Errorf("ownership check failed: %w", err)
	}

	logger.DebugCtx(ctx, "Ownership check completed",
		zap.String("owner", *owner),
		zap.Time("timestamp", at),
		zap.Bool("result", result.Result))

	out, err := adapter.NewJSON().MarshalIndent(result)
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}

// splitList splits a comma-separated flag value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
