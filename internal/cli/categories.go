package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worktime/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name> <color>",
	Short: "Add a category",
	Long: `Add a category. The color is a hex, named, rgb() or rgba() color.

Examples:
  worktime categories add Support "#6366f1"
  worktime categories add Travel teal`,
	Args: cobra.ExactArgs(2),
	RunE: runCategoriesAdd,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Long: `Delete a category. Recorded sessions keep the name and color they were
recorded with. The default category cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriesDelete,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd, categoriesDeleteCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		categories, err := a.Stores.Categories.Load(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR")
		fmt.Fprintln(w, "--\t----\t-----")
		for _, c := range categories {
			id := c.ID
			if c.ID == domain.DefaultCategoryID {
				id += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", id, c.Name, c.Color)
		}
		return w.Flush()
	})
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		c, err := a.Stores.Categories.Add(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
		return nil
	})
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *AppContext) error {
		if err := a.Stores.Categories.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
		return nil
	})
}
