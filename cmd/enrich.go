package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pundit-watch/internal/enrich"
	"pundit-watch/internal/fetch"
	"pundit-watch/internal/model"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <url>",
	Short: "Debug: fetch a page and print the extracted content fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		client := fetch.New(cfg.Crawler.RequestTimeout())
		defer client.Close()
		enricher := enrich.New(client, cfg.Crawler.BodySelector)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		a := enricher.Enrich(ctx, model.Article{URL: args[0], Title: args[0]})
		fmt.Fprintf(os.Stdout, "author: %s\n", a.Author)
		fmt.Fprintf(os.Stdout, "published_at: %s\n", a.PublishedAt)
		fmt.Fprintf(os.Stdout, "content chars: %d\n", len([]rune(a.FullContent)))
		if a.FullContent != "" {
			preview := []rune(a.FullContent)
			if len(preview) > 280 {
				preview = preview[:280]
			}
			fmt.Fprintf(os.Stdout, "preview: %s\n", string(preview))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
