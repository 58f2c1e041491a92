package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
	"github.com/shaiso/glimpse/internal/browse"
)

// BrowseOptions — параметры TUI-браузера из конфигурации.
type BrowseOptions struct {
	Categories    browse.CategoryIDs
	FavoritesPath string
}

// NewBrowseCmd создаёт команду запуска TUI-браузера каталога.
func NewBrowseCmd(clientFn func() *apiclient.Client, opts BrowseOptions) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in an interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := browse.NewFavoritesStore(opts.FavoritesPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				if err := store.SetDisplayName(displayName); err != nil {
					return err
				}
			}

			loader := browse.NewLoader(clientFn(), opts.Categories)
			return browse.Run(cmd.Context(), loader, store)
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name shown in the header (saved)")

	return cmd
}
