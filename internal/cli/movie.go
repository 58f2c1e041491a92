package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
)

var movieHeaders = []string{"ID", "TITLE", "RATING", "LANG", "CATEGORIES", "GENRES"}

func movieRow(m apiclient.Movie) []string {
	return []string{
		m.ID,
		truncate(m.Title, 40),
		formatRating(m.VoteAverage),
		orDash(m.OriginalLanguage),
		orDash(strings.Join(m.Categories, ", ")),
		orDash(strings.Join(m.Genres, ", ")),
	}
}

// NewMovieCmd создаёт группу команд для управления фильмами.
func NewMovieCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movie",
		Aliases: []string{"movies"},
		Short:   "Manage movies",
	}

	cmd.AddCommand(
		newMovieListCmd(clientFn, outputFn),
		newMovieShowCmd(clientFn, outputFn),
		newMovieCreateCmd(clientFn, outputFn),
		newMovieUpdateCmd(clientFn, outputFn),
		newMovieDeleteCmd(clientFn, outputFn),
		newMovieRestoreCmd(clientFn, outputFn),
	)

	return cmd
}

func newMovieListCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := clientFn().ListMovies(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(movies))
			for i, m := range movies {
				rows[i] = movieRow(m)
			}

			outputFn().Print(movieHeaders, rows, movies)
			return nil
		},
	}
}

func newMovieShowCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show movie details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movie, err := clientFn().GetMovie(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := outputFn()
			if out.jsonMode {
				out.JSON(movie)
				return nil
			}

			out.Table([]string{"FIELD", "VALUE"}, [][]string{
				{"ID", movie.ID},
				{"Title", movie.Title},
				{"Overview", orDash(truncate(movie.Overview, 80))},
				{"Poster", orDash(movie.PosterPath)},
				{"Language", orDash(movie.OriginalLanguage)},
				{"Rating", formatRating(movie.VoteAverage)},
				{"Categories", orDash(strings.Join(movie.Categories, ", "))},
				{"Genres", orDash(strings.Join(movie.Genres, ", "))},
				{"Created", formatTime(movie.CreatedAt)},
				{"Updated", formatTime(movie.UpdatedAt)},
			})
			return nil
		},
	}
}

func newMovieCreateCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var req apiclient.CreateMovieRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			movie, err := clientFn().CreateMovie(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Movie created: %s", movie.ID))
			out.Print(movieHeaders, [][]string{movieRow(*movie)}, movie)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Movie title (required)")
	cmd.Flags().StringVar(&req.Overview, "overview", "", "Plot overview")
	cmd.Flags().StringVar(&req.PosterPath, "poster", "", "Poster path or URL")
	cmd.Flags().StringVar(&req.OriginalLanguage, "language", "", "Original language code, e.g. en")
	cmd.Flags().Float64Var(&req.VoteAverage, "rating", 0, "Average vote")
	cmd.MarkFlagRequired("title")

	return cmd
}

func newMovieUpdateCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var (
		title, overview, poster, language string
		rating                            float64
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			req := apiclient.UpdateMovieRequest{}
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("overview") {
				req.Overview = &overview
			}
			if flags.Changed("poster") {
				req.PosterPath = &poster
			}
			if flags.Changed("language") {
				req.OriginalLanguage = &language
			}
			if flags.Changed("rating") {
				req.VoteAverage = &rating
			}

			movie, err := clientFn().UpdateMovie(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Movie updated: %s", movie.ID))
			out.Print(movieHeaders, [][]string{movieRow(*movie)}, movie)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Movie title")
	cmd.Flags().StringVar(&overview, "overview", "", "Plot overview")
	cmd.Flags().StringVar(&poster, "poster", "", "Poster path or URL")
	cmd.Flags().StringVar(&language, "language", "", "Original language code")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Average vote")

	return cmd
}

func newMovieDeleteCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().DeleteMovie(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Movie deleted: %s", args[0]))
			return nil
		},
	}
}

func newMovieRestoreCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a deleted movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movie, err := clientFn().RestoreMovie(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Movie restored: %s", movie.ID))
			out.Print(movieHeaders, [][]string{movieRow(*movie)}, movie)
			return nil
		},
	}
}
