package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"lp_bot/internal/exchange"
	"lp_bot/internal/runner"
	"lp_bot/internal/scanner"
	"lp_bot/pkg/logger"
)

// One-shot market scan: fetch, score, rank, print, exit. No Telegram,
// no config file needed.
func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("lp_scan")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gamma := exchange.NewGamma(os.Getenv("GAMMA_BASE"))
	res, err := scanner.New(gamma).Scan(ctx)
	if err != nil {
		logger.Fatal("scan: %v", err)
	}
	runner.NewRenderer(os.Stdout).Scan(res)
}
