package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/moments/internal/language"
)

func (a *App) languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List the countries and languages you can pick",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.config.Catalog()
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), catalog, a.config.Language.Default)
			return nil
		},
	}
}

// printCatalog lists countries in catalog order with their languages indented.
// The selected language is marked.
func printCatalog(w io.Writer, catalog *language.Catalog, selected string) {
	for i, country := range catalog.Countries() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("%s %s %s", language.Flag(country.Code), formatHeader(country.Name), formatMuted("("+country.Code+")"))
		if n := len(country.Languages); n > 1 {
			header += "  " + formatMuted(fmt.Sprintf("%d languages", n))
		}
		fmt.Fprintln(w, header)

		for _, l := range country.Languages {
			line := fmt.Sprintf("    %-10s %s", l.Code, l.Name)
			if l.Code == selected {
				line += " " + formatSelected("✓")
			}
			fmt.Fprintln(w, line)
		}
	}
}
