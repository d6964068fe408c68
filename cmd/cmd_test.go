package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/envconfig"
	"github.com/joshuafuller/stateprovince/internal/markup"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STATEPROVINCE_CACHE_DIR", t.TempDir())
	t.Setenv("STATEPROVINCE_CATALOG", "")
	envconfig.LoadConfig()

	var out, errOut bytes.Buffer
	cli := NewCLI()
	cli.SetOut(&out)
	cli.SetErr(&errOut)
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender(t *testing.T) {
	t.Run("filtered", func(t *testing.T) {
		out, err := run(t, "render", "--country", "CA", "--region", "QC", "--action", "/save")
		require.NoError(t, err)
		assert.Contains(t, out, `<form method="post" action="/save">`)
		assert.Contains(t, out, `<option value="CA" selected="selected">Canada</option>`)
		assert.Contains(t, out, `<option class="country-ca" value="QC" selected="selected">Quebec</option>`)
		assert.NotContains(t, out, "Alabama")
	})

	t.Run("unfiltered", func(t *testing.T) {
		out, err := run(t, "render", "--unfiltered")
		require.NoError(t, err)
		assert.Contains(t, out, "Alabama")
		assert.Contains(t, out, "Quebec")
	})

	t.Run("unknown country", func(t *testing.T) {
		_, err := run(t, "render", "--country", "ZZ")
		assert.ErrorIs(t, err, markup.ErrUnknownCountry)
	})
}

func TestFilter(t *testing.T) {
	page := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body><form>
<p><select class="localflavor-generic-country" name="country">
<option value="US" selected>United States</option>
<option value="FR">France</option>
</select></p>
<p><select class="localflavor-generic-stateprovince" name="division">
<option class="country-us" value="NY">New York</option>
<option class="country-ca" value="ON">Ontario</option>
</select></p>
</form></body></html>`), 0o644))

	out, err := run(t, "filter", page)
	require.NoError(t, err)
	assert.Contains(t, out, "New York")
	assert.NotContains(t, out, "Ontario")

	out, err = run(t, "filter", page, "--country", "FR")
	require.NoError(t, err)
	assert.Contains(t, out, `style="display: none"`)
	assert.NotContains(t, out, "New York")

	_, err = run(t, "filter", page, "--country-class", "nope")
	assert.ErrorIs(t, err, markup.ErrNoCountrySelect)

	_, err = run(t, "filter", filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalogShow(t *testing.T) {
	out, err := run(t, "catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "United States (default)")
	assert.Contains(t, out, "Portugal")

	out, err = run(t, "catalog", "show", "ca")
	require.NoError(t, err)
	assert.Contains(t, out, "Quebec")
	assert.NotContains(t, out, "Texas")

	_, err = run(t, "catalog", "show", "ZZ")
	assert.ErrorIs(t, err, markup.ErrUnknownCountry)
}

func TestCache(t *testing.T) {
	out, err := run(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "No cache found")

	dir := t.TempDir()
	sibling := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(sibling, []byte("not ours"), 0o644))
	cache := catalog.Cache{Dir: dir}
	require.NoError(t, cache.Save("https://example.com/catalog.json", catalog.Sample(), `"v1"`))

	t.Setenv("STATEPROVINCE_CACHE_DIR", dir)
	envconfig.LoadConfig()

	var buf bytes.Buffer
	cli := NewCLI()
	cli.SetOut(&buf)
	cli.SetArgs([]string{"cache", "info"})
	require.NoError(t, cli.Execute())
	assert.Contains(t, buf.String(), "https://example.com/catalog.json")

	buf.Reset()
	cli = NewCLI()
	cli.SetOut(&buf)
	cli.SetArgs([]string{"cache", "clear"})
	require.NoError(t, cli.Execute())
	assert.Contains(t, buf.String(), "Cache cleared")

	_, err = os.Stat(cache.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(sibling)
	assert.NoError(t, err)
}

func TestEnv(t *testing.T) {
	out, err := run(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "STATEPROVINCE_CACHE_DIR")
	assert.Contains(t, out, "STATEPROVINCE_CACHE_TTL")
}
