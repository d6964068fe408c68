package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/envconfig"
	"github.com/joshuafuller/stateprovince/internal/markup"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func CatalogShowHandler(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		country := cat.Lookup(args[0])
		if country == nil {
			return fmt.Errorf("%w: %s", markup.ErrUnknownCountry, args[0])
		}

		var data [][]string
		for _, r := range country.Regions {
			data = append(data, []string{r.Code, r.Name})
		}
		table := newTable(cmd.OutOrStdout(), "CODE", "NAME")
		table.AppendBulk(data)
		table.Render()
		return nil
	}

	var data [][]string
	for _, c := range cat.Countries {
		name := c.Name
		if c.Code == cat.Default {
			name += " (default)"
		}
		data = append(data, []string{catalog.Flag(c.Code) + " " + c.Code, name, strconv.Itoa(len(c.Regions))})
	}

	table := newTable(cmd.OutOrStdout(), "CODE", "NAME", "REGIONS")
	table.AppendBulk(data)
	table.Render()
	return nil
}

func CacheInfoHandler(cmd *cobra.Command, args []string) error {
	info, err := cacheFromEnv().Info()
	if errors.Is(err, catalog.ErrNoCache) {
		fmt.Fprintln(cmd.OutOrStdout(), "No cache found")
		return nil
	} else if err != nil {
		return err
	}

	table := newTable(cmd.OutOrStdout(), "KEY", "VALUE")
	table.AppendBulk([][]string{
		{"Source", info.Source},
		{"Countries", strconv.Itoa(info.Countries)},
		{"Regions", strconv.Itoa(info.Regions)},
		{"Last updated", info.LastUpdated.Format(time.DateTime)},
		{"Age", info.Age.Round(time.Minute).String()},
		{"Location", info.Path},
	})
	table.Render()
	return nil
}

func CacheClearHandler(cmd *cobra.Command, args []string) error {
	if err := cacheFromEnv().Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}

func EnvHandler(cmd *cobra.Command, args []string) error {
	vars := envconfig.AsMap()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var data [][]string
	for _, name := range names {
		v := vars[name]
		data = append(data, []string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
	}

	table := newTable(cmd.OutOrStdout(), "NAME", "VALUE", "DESCRIPTION")
	table.AppendBulk(data)
	table.Render()
	return nil
}
