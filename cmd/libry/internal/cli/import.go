package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/libry/internal/importer"
)

func newImportCommand(e *env) *cobra.Command {
	var (
		count  int
		filter importer.Filter
		file   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import books from the remote catalog or from a CSV file",
		Example: `  libry import --count 50 --title potter
  libry import --file goodreads.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()

				items, layout, err := a.CSV.Parse(f)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file, err)
				}

				n, err := a.Importer.ImportItems(cmd.Context(), items)
				fmt.Fprintf(out, "imported %d of %d rows (%s layout)\n", n, len(items), layout)

				return err
			}

			n, err := a.Importer.Import(cmd.Context(), count, filter)
			fmt.Fprintf(out, "imported %d books\n", n)

			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of books to import from the catalog")
	cmd.Flags().StringVar(&filter.Title, "title", "", "only import titles containing this text")
	cmd.Flags().StringVar(&filter.Authors, "authors", "", "only import books by matching authors")
	cmd.Flags().StringVarP(&file, "file", "f", "", "import a CSV file instead of the remote catalog")
	cmd.MarkFlagsMutuallyExclusive("file", "title")
	cmd.MarkFlagsMutuallyExclusive("file", "authors")

	return cmd
}
