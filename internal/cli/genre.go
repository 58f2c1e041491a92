package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
)

var genreHeaders = []string{"ID", "NAME"}

// NewGenreCmd создаёт группу команд для управления жанрами.
func NewGenreCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genre",
		Aliases: []string{"genres"},
		Short:   "Manage genres",
	}

	cmd.AddCommand(
		newGenreListCmd(clientFn, outputFn),
		newGenreShowCmd(clientFn, outputFn),
		newGenreCreateCmd(clientFn, outputFn),
		newGenreRenameCmd(clientFn, outputFn),
		newGenreDeleteCmd(clientFn, outputFn),
		newGenreRestoreCmd(clientFn, outputFn),
		newGenreMoviesCmd(clientFn, outputFn),
		newGenreLinkCmd(clientFn, outputFn),
	)

	return cmd
}

func newGenreListCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			genres, err := clientFn().ListGenres(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(genres))
			for i, g := range genres {
				rows[i] = []string{g.ID, g.Name}
			}

			outputFn().Print(genreHeaders, rows, genres)
			return nil
		},
	}
}

func newGenreShowCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genre, err := clientFn().GetGenre(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			outputFn().Print(genreHeaders, [][]string{{genre.ID, genre.Name}}, genre)
			return nil
		},
	}
}

func newGenreCreateCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			genre, err := clientFn().CreateGenre(cmd.Context(), name)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Genre created: %s", genre.ID))
			out.Print(genreHeaders, [][]string{{genre.ID, genre.Name}}, genre)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Genre name (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newGenreRenameCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a genre",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			genre, err := clientFn().RenameGenre(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Genre renamed: %s", genre.ID))
			out.Print(genreHeaders, [][]string{{genre.ID, genre.Name}}, genre)
			return nil
		},
	}
}

func newGenreDeleteCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().DeleteGenre(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Genre deleted: %s", args[0]))
			return nil
		},
	}
}

func newGenreRestoreCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a deleted genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genre, err := clientFn().RestoreGenre(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Genre restored: %s", genre.ID))
			out.Print(genreHeaders, [][]string{{genre.ID, genre.Name}}, genre)
			return nil
		},
	}
}

func newGenreMoviesCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "movies ID",
		Short: "List movies of a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := clientFn().ListGenreMovies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(movies))
			for i, m := range movies {
				rows[i] = []string{m.ID, truncate(m.Title, 40), formatRating(m.VoteAverage)}
			}

			outputFn().Print([]string{"ID", "TITLE", "RATING"}, rows, movies)
			return nil
		},
	}
}

func newGenreLinkCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "link ID MOVIE_ID...",
		Short: "Add movies to a genre",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().LinkGenreMovies(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Linked %d movie(s) to genre %s", len(args)-1, args[0]))
			return nil
		},
	}
}
