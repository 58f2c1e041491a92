package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/glimpse/internal/apiclient"
)

var categoryHeaders = []string{"ID", "NAME", "TYPE"}

func categoryRow(c apiclient.Category) []string {
	return []string{c.ID, c.Name, orDash(c.Type)}
}

// NewCategoryCmd создаёт группу команд для управления категориями.
func NewCategoryCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(clientFn, outputFn),
		newCategoryShowCmd(clientFn, outputFn),
		newCategoryCreateCmd(clientFn, outputFn),
		newCategoryUpdateCmd(clientFn, outputFn),
		newCategoryDeleteCmd(clientFn, outputFn),
		newCategoryRestoreCmd(clientFn, outputFn),
		newCategoryMoviesCmd(clientFn, outputFn),
		newCategoryLinkCmd(clientFn, outputFn),
	)

	return cmd
}

func newCategoryListCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := clientFn().ListCategories(cmd.Context(), typ)
			if err != nil {
				return err
			}

			rows := make([][]string, len(categories))
			for i, c := range categories {
				rows[i] = categoryRow(c)
			}

			outputFn().Print(categoryHeaders, rows, categories)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Filter by category type")

	return cmd
}

func newCategoryShowCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := clientFn().GetCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			outputFn().Print(categoryHeaders, [][]string{categoryRow(*category)}, category)
			return nil
		},
	}
}

func newCategoryCreateCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var name, typ string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := clientFn().CreateCategory(cmd.Context(), name, typ)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Category created: %s", category.ID))
			out.Print(categoryHeaders, [][]string{categoryRow(*category)}, category)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name (required)")
	cmd.Flags().StringVar(&typ, "type", "", "Category type, e.g. list")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newCategoryUpdateCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	var name, typ string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := apiclient.UpdateCategoryRequest{}
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("type") {
				req.Type = &typ
			}

			category, err := clientFn().UpdateCategory(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Category updated: %s", category.ID))
			out.Print(categoryHeaders, [][]string{categoryRow(*category)}, category)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&typ, "type", "", "Category type")

	return cmd
}

func newCategoryDeleteCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Soft-delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Category deleted: %s", args[0]))
			return nil
		},
	}
}

func newCategoryRestoreCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a deleted category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := clientFn().RestoreCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := outputFn()
			out.Success(fmt.Sprintf("Category restored: %s", category.ID))
			out.Print(categoryHeaders, [][]string{categoryRow(*category)}, category)
			return nil
		},
	}
}

func newCategoryMoviesCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "movies ID",
		Short: "List movies in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := clientFn().ListCategoryMovies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(links))
			for i, l := range links {
				rows[i] = []string{l.ID, l.Movie.ID, truncate(l.Movie.Title, 40), formatRating(l.Movie.VoteAverage)}
			}

			outputFn().Print([]string{"LINK", "MOVIE", "TITLE", "RATING"}, rows, links)
			return nil
		},
	}
}

func newCategoryLinkCmd(clientFn func() *apiclient.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "link ID MOVIE_ID...",
		Short: "Add movies to a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFn().LinkCategoryMovies(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			outputFn().Success(fmt.Sprintf("Linked %d movie(s) to category %s", len(args)-1, args[0]))
			return nil
		},
	}
}
