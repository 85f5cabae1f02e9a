package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pundit-watch/internal/crawler"
	"pundit-watch/internal/enrich"
	"pundit-watch/internal/fetch"
	"pundit-watch/internal/redisclient"
	"pundit-watch/internal/storage"
	"pundit-watch/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic crawl worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(cfg.Sources) == 0 {
			return fmt.Errorf("no sources configured")
		}

		interval, err := time.ParseDuration(cfg.Worker.Interval)
		if err != nil {
			return fmt.Errorf("invalid worker interval: %w", err)
		}

		// Redis client
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		c := crawler.New(cfg.Sources, crawler.Params{
			MaxArticlesPerSource: cfg.Crawler.MaxArticlesPerSource,
			LookbackHours:        cfg.Crawler.LookbackHours,
			RequestTimeout:       cfg.Crawler.RequestTimeout(),
			Pacing:               cfg.Crawler.PacingDuration(),
			RelevanceKeywords:    cfg.Crawler.Keywords,
			ScrapePathKeywords:   cfg.Crawler.ScrapePathKeywords,
		})

		var enricher *enrich.Fetcher
		var enrichClient *fetch.Client
		if cfg.Worker.Enrich {
			// The enrichment client outlives single crawl runs, so it is
			// owned here rather than by the crawler.
			enrichClient = fetch.New(cfg.Crawler.RequestTimeout())
			defer enrichClient.Close()
			enricher = enrich.New(enrichClient, cfg.Crawler.BodySelector)
		}

		cw := &worker.CrawlWorker{
			Crawler:  c,
			Store:    store,
			Enricher: enricher,
			Interval: interval,
		}

		slog.Info("starting crawl worker", "sources", len(cfg.Sources), "interval", interval)

		mgr := worker.NewManager(cw)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
