// Package main runs the development bank server: an in-memory stand-in for
// the real game server, good enough to drive the dashboard end to end.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mks/bankboard/internal/bankd"
	"github.com/mks/bankboard/pkg/logger"
)

func main() {
	port := flag.Int("port", 8888, "Listen port")
	players := flag.String("players", strings.Join(bankd.DefaultPlayers(), ","), "Comma-separated player names")
	startingMoney := flag.Int("starting-money", bankd.DefaultStartingMoney, "Opening balance per player")
	turnInterval := flag.Duration("turn-interval", 2*time.Second, "Market update cadence")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Market RNG seed")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info", Pretty: true})

	market := bankd.NewMarket(bankd.DefaultStocks(), *seed)
	bank := bankd.NewBank(
		splitPlayers(*players),
		*startingMoney,
		market,
		bankd.DefaultHeadlines(),
		log,
	)

	srv := bankd.New(bankd.Config{
		Log:  log,
		Bank: bank,
		Port: *port,
	})

	done := make(chan struct{})
	go bank.Run(done, *turnInterval)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		close(done)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("bank server stopped")
}

func splitPlayers(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
