package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/envconfig"
	"github.com/joshuafuller/stateprovince/internal/logutil"
	"github.com/joshuafuller/stateprovince/internal/markup"
	"github.com/joshuafuller/stateprovince/internal/tui"
)

func cacheFromEnv() catalog.Cache {
	return catalog.Cache{Dir: envconfig.CacheDir, TTL: envconfig.CacheTTL}
}

func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	source, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}
	return catalog.Open(cmd.Context(), source, cacheFromEnv())
}

func PickHandler(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog(cmd)
	if err != nil {
		return err
	}

	country, err := cmd.Flags().GetString("country")
	if err != nil {
		return err
	}

	detect, err := cmd.Flags().GetBool("detect")
	if err != nil {
		return err
	}
	if detect && country == "" {
		if loc, ok := catalog.Locate(cmd.Context(), catalog.LocationServices...); ok && cat.Lookup(loc.CountryCode) != nil {
			slog.Info("detected location", "country", loc.CountryCode, "region", loc.RegionCode)
			country = loc.CountryCode
		}
	}
	if country != "" && cat.Lookup(country) == nil {
		return fmt.Errorf("%w: %s", markup.ErrUnknownCountry, country)
	}

	// The picker owns the terminal; logs go to STATEPROVINCE_LOG or nowhere.
	var logw io.Writer = io.Discard
	if envconfig.LogFile != "" {
		f, err := os.OpenFile(envconfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logw = f
	}
	prev := slog.Default()
	slog.SetDefault(logutil.NewLogger(logw, logutil.Level(envconfig.Debug, envconfig.Trace)))
	defer slog.SetDefault(prev)

	final, err := tea.NewProgram(tui.New(cat, country),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStderr()),
	).Run()
	if err != nil {
		return err
	}

	c, r, ok := final.(tui.Model).Result()
	if !ok {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), c, r)
	return nil
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stateprovince",
		Short: "Country and state/province select filtering",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), logutil.Level(envconfig.Debug, envconfig.Trace)))
		},
	}

	rootCmd.PersistentFlags().String("catalog", envconfig.Catalog, "Catalog file or http(s) URL (default: built-in sample)")

	cobra.EnableCommandSorting = false

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a country and state/province interactively",
		Args:  cobra.NoArgs,
		RunE:  PickHandler,
	}
	pickCmd.Flags().String("country", "", "Preselected country code")
	pickCmd.Flags().Bool("detect", false, "Preselect the country from IP geolocation")

	filterCmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Filter the region selects of an HTML document",
		Long:  "Bind every country/region widget pair in FILE (\"-\" for stdin), optionally change the country, and write the result to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE:  FilterHandler,
	}
	filterCmd.Flags().String("country", "", "Change every widget to this country")
	filterCmd.Flags().String("country-class", markup.DefaultCountryClass, "Class of country selects")
	filterCmd.Flags().String("region-class", markup.DefaultRegionClass, "Class of region selects")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write a country/region form for the catalog",
		Args:  cobra.NoArgs,
		RunE:  RenderHandler,
	}
	renderCmd.Flags().String("country", "", "Selected country (default: catalog default)")
	renderCmd.Flags().String("region", "", "Selected state/province")
	renderCmd.Flags().String("action", "", "Form action")
	renderCmd.Flags().Bool("unfiltered", false, "Emit every region instead of only the selected country's")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the country catalog",
	}
	catalogShowCmd := &cobra.Command{
		Use:   "show [COUNTRY]",
		Short: "List countries, or the regions of one country",
		Args:  cobra.MaximumNArgs(1),
		RunE:  CatalogShowHandler,
	}
	catalogCmd.AddCommand(catalogShowCmd)

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fetched catalog cache",
	}
	cacheInfoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Args:  cobra.NoArgs,
		RunE:  CacheInfoHandler,
	}
	cacheClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached catalog",
		Args:  cobra.NoArgs,
		RunE:  CacheClearHandler,
	}
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd)

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show environment configuration",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	rootCmd.AddCommand(
		pickCmd,
		filterCmd,
		renderCmd,
		catalogCmd,
		cacheCmd,
		envCmd,
	)

	return rootCmd
}
