// Glimpse CLI — управление каталогом через HTTP API и TUI-браузер.
//
// Использование:
//
//	glimpse [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	movie     Управление фильмами
//	category  Управление категориями и их фильмами
//	genre     Управление жанрами и их фильмами
//	link      Просмотр связей фильм-категория и фильм-жанр
//	browse    Интерактивный браузер каталога
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
	"github.com/shaiso/glimpse/internal/browse"
	"github.com/shaiso/glimpse/internal/cli"
	"github.com/shaiso/glimpse/internal/config"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: config:", err)
		cfg = config.Default()
	}

	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "glimpse",
		Short:         "Glimpse CLI — movie catalog tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.Client.APIURL, "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *apiclient.Client { return apiclient.New(apiURL, cfg.Client.Timeout) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewMovieCmd(clientFn, outputFn),
		cli.NewCategoryCmd(clientFn, outputFn),
		cli.NewGenreCmd(clientFn, outputFn),
		cli.NewLinksCmd(clientFn, outputFn),
		cli.NewBrowseCmd(clientFn, cli.BrowseOptions{
			Categories: browse.CategoryIDs{
				Discover: cfg.Client.DiscoverCategory,
				Trending: cfg.Client.TrendingCategory,
				TopRated: cfg.Client.TopRatedCategory,
				Upcoming: cfg.Client.UpcomingCategory,
			},
			FavoritesPath: cfg.Client.FavoritesPath,
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
