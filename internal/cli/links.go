package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
)

// NewLinksCmd создаёт группу команд для просмотра join-записей.
func NewLinksCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "link",
		Aliases: []string{"links"},
		Short:   "Inspect movie-category and movie-genre links",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "categories",
			Short: "List all movie-category links",
			RunE: func(cmd *cobra.Command, args []string) error {
				links, err := clientFn().ListMovieCategories(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, len(links))
				for i, l := range links {
					rows[i] = []string{l.ID, truncate(l.Movie.Title, 40), l.Category.Name}
				}

				outputFn().Print([]string{"LINK", "MOVIE", "CATEGORY"}, rows, links)
				return nil
			},
		},
		&cobra.Command{
			Use:   "genres",
			Short: "List all movie-genre links",
			RunE: func(cmd *cobra.Command, args []string) error {
				links, err := clientFn().ListMovieGenres(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, len(links))
				for i, l := range links {
					rows[i] = []string{l.ID, truncate(l.Movie.Title, 40), l.Genre.Name}
				}

				outputFn().Print([]string{"LINK", "MOVIE", "GENRE"}, rows, links)
				return nil
			},
		},
	)

	return cmd
}
