package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuafuller/stateprovince/internal/markup"
)

func FilterHandler(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	doc, err := markup.Parse(r)
	if err != nil {
		return err
	}

	countryClass, err := cmd.Flags().GetString("country-class")
	if err != nil {
		return err
	}
	regionClass, err := cmd.Flags().GetString("region-class")
	if err != nil {
		return err
	}

	widgets, err := doc.Bind(markup.WithClasses(countryClass, regionClass))
	if err != nil {
		return err
	}

	if country, _ := cmd.Flags().GetString("country"); country != "" {
		for _, w := range widgets {
			if err := w.ChangeCountry(country); err != nil {
				return err
			}
		}
	}
	slog.Debug("filtered document", "widgets", len(widgets))

	return doc.Render(cmd.OutOrStdout())
}

func RenderHandler(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}

	var opts markup.FormOptions
	if opts.Country, err = cmd.Flags().GetString("country"); err != nil {
		return err
	}
	if opts.Region, err = cmd.Flags().GetString("region"); err != nil {
		return err
	}
	if opts.Action, err = cmd.Flags().GetString("action"); err != nil {
		return err
	}
	if opts.Country != "" && cat.Lookup(opts.Country) == nil {
		return markup.ErrUnknownCountry
	}

	doc := markup.BuildForm(cat, opts)
	if unfiltered, _ := cmd.Flags().GetBool("unfiltered"); !unfiltered {
		if _, err := doc.Bind(); err != nil {
			return err
		}
	}

	return doc.Render(cmd.OutOrStdout())
}
