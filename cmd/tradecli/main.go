// Command tradecli is the composition root: it wires the SQLite store,
// the HTTP broker adapter, and internal/facade into a single binary and
// dispatches one subcommand per invocation, in the same flag-driven,
// no-framework style as the teacher's cmd/scanner/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskcore/tradecore/config"
	"github.com/riskcore/tradecore/internal/adapters/broker/httpbroker"
	"github.com/riskcore/tradecore/internal/adapters/display"
	"github.com/riskcore/tradecore/internal/adapters/storage"
	"github.com/riskcore/tradecore/internal/facade"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	store, err := storage.New(cfg.Store.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Store.DSN)
		os.Exit(1)
	}
	defer store.Close()

	client := httpbroker.NewClient(cfg.Broker.BaseURL, cfg.Broker.CredentialID,
		cfg.Broker.RequestsPerSecond, cfg.Broker.Burst, cfg.Broker.MaxRetries, cfg.Timeout())
	broker := httpbroker.New(client)

	f := facade.New(store, broker)
	console := display.NewConsole()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd, rest := args[0], args[1:]
	if err := dispatch(ctx, f, console, cmd, rest); err != nil {
		slog.Error("command failed", "command", cmd, "err", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, f *facade.Facade, console *display.Console, cmd string, args []string) error {
	switch cmd {
	case "account-create":
		return cmdAccountCreate(ctx, f, args)
	case "account-list":
		return cmdAccountList(ctx, f, args)
	case "rule-create":
		return cmdRuleCreate(ctx, f, args)
	case "rule-delete":
		return cmdRuleDelete(ctx, f, args)
	case "vehicle-create":
		return cmdVehicleCreate(ctx, f, args)
	case "deposit":
		return cmdDeposit(ctx, f, console, args)
	case "withdraw":
		return cmdWithdraw(ctx, f, console, args)
	case "balance":
		return cmdBalance(ctx, f, console, args)
	case "rebuild-balance":
		return cmdRebuildBalance(ctx, f, console, args)
	case "max-quantity":
		return cmdMaxQuantity(ctx, f, args)
	case "trade-create":
		return cmdTradeCreate(ctx, f, args)
	case "trade-fund":
		return cmdTradeTransition(ctx, f, args, f.FundTrade)
	case "trade-submit":
		return cmdTradeTransition(ctx, f, args, f.SubmitTrade)
	case "trade-sync":
		return cmdTradeTransition(ctx, f, args, f.SyncTrade)
	case "trade-close":
		return cmdTradeTransition(ctx, f, args, f.CloseTrade)
	case "trade-cancel-funded":
		return cmdTradeTransition(ctx, f, args, f.CancelFundedTrade)
	case "trade-cancel-submitted":
		return cmdTradeTransition(ctx, f, args, f.CancelSubmittedTrade)
	case "trade-list":
		return cmdTradeList(ctx, f, console, args)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: tradecli [-config path] <command> [args...]

commands:
  account-create  <name> <environment> <taxes-pct> <earnings-pct>
  account-list
  rule-create     <account-id> <name> <kind> <percentage> <level>
  rule-delete     <rule-id>
  vehicle-create  <symbol> <isin> <category>
  deposit         <account-id> <currency> <amount>
  withdraw        <account-id> <currency> <amount>
  balance         <account-id> <currency>
  rebuild-balance <account-id> <currency>
  max-quantity    <account-id> <currency> <long|short> <entry-price> <stop-price>
  trade-create    <account-id> <vehicle-id> <long|short> <currency> <qty> <entry> <stop> <target>
  trade-fund | trade-submit | trade-sync | trade-close
  trade-cancel-funded | trade-cancel-submitted  <trade-id>
  trade-list      <account-id> [status...]`)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
