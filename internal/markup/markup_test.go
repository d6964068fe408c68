package markup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/joshuafuller/stateprovince/internal/catalog"
	"github.com/joshuafuller/stateprovince/internal/filter"
)

const northAmerica = `<!DOCTYPE html>
<html><body>
<form id="address">
<p><select name="country" class="localflavor-generic-country">
  <option value="US" selected="selected">United States</option>
  <option value="CA">Canada</option>
  <option value="FR">France</option>
</select></p>
<p id="division-row"><select name="division" class="localflavor-generic-stateprovince">
  <option class="country-us" value="CA">California</option>
  <option class="country-us" value="TX">Texas</option>
  <option class="country-ca" value="ON">Ontario</option>
</select></p>
</form>
</body></html>`

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func visibleLabels(s *RegionSelect) []string {
	out := []string{}
	for _, o := range s.Options() {
		out = append(out, o.Label)
	}
	return out
}

func TestBind_Scenario(t *testing.T) {
	doc := parse(t, northAmerica)
	widgets, err := doc.Bind()
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	w := widgets[0]

	if diff := cmp.Diff([]string{"California", "Texas"}, visibleLabels(w.Region)); diff != "" {
		t.Errorf("after ready (-want +got):\n%s", diff)
	}
	assert.False(t, w.Region.Hidden())

	require.NoError(t, w.ChangeCountry("CA"))
	assert.Equal(t, []string{"Ontario"}, visibleLabels(w.Region))
	opts := w.Region.Options()
	require.Len(t, opts, 1)
	assert.True(t, opts[0].Selected)
	assert.False(t, w.Region.Hidden())

	require.NoError(t, w.ChangeCountry("fr"))
	assert.Empty(t, visibleLabels(w.Region))
	assert.True(t, w.Region.Hidden())
	assert.Equal(t, filter.Hidden, w.Filter.State())

	require.NoError(t, w.ChangeCountry("US"))
	assert.Equal(t, []string{"California", "Texas"}, visibleLabels(w.Region))
	assert.False(t, w.Region.Hidden())

	assert.ErrorIs(t, w.ChangeCountry("ZZ"), ErrUnknownCountry)
	assert.Equal(t, "US", w.Country.SelectedValue())
}

func TestBind_RenderReflectsFilter(t *testing.T) {
	doc := parse(t, northAmerica)
	widgets, err := doc.Bind()
	require.NoError(t, err)
	require.NoError(t, widgets[0].ChangeCountry("FR"))

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, `<p id="division-row" style="display: none">`)
	assert.NotContains(t, out, "California")
	assert.Contains(t, out, `<option value="FR" selected="selected">France</option>`)
}

func TestBind_StartsHiddenWhenDefaultHasNoRegions(t *testing.T) {
	src := strings.Replace(northAmerica, `<option value="US" selected="selected">`, `<option value="US">`, 1)
	src = strings.Replace(src, `<option value="FR">`, `<option value="FR" selected>`, 1)

	doc := parse(t, src)
	widgets, err := doc.Bind()
	require.NoError(t, err)
	assert.True(t, widgets[0].Region.Hidden())
	assert.Empty(t, widgets[0].Region.Options())
	assert.Equal(t, 3, widgets[0].Filter.Index().Len())
}

func TestBind_NoSelectedCountryUsesFirstOption(t *testing.T) {
	src := `<form><p><select class="localflavor-generic-country"><option value="CA">Canada</option><option value="US">United States</option></select></p>
<p><select class="localflavor-generic-stateprovince"><option class="country-us" value="WA">Washington</option><option class="country-ca" value="QC">Quebec</option></select></p></form>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	assert.Equal(t, []string{"Quebec"}, visibleLabels(widgets[0].Region))
}

func TestBind_FormsAreIndependent(t *testing.T) {
	src := `<body>
<form id="billing"><table>
<tr><td><select class="localflavor-generic-country"><option value="US" selected>US</option><option value="CA">CA</option></select></td></tr>
<tr id="billing-row"><td><select class="localflavor-generic-stateprovince"><option class="country-us" value="NY">New York</option><option class="country-ca" value="BC">British Columbia</option></select></td></tr>
</table></form>
<form id="shipping"><table>
<tr><td><select class="localflavor-generic-country"><option value="US">US</option><option value="CA" selected>CA</option></select></td></tr>
<tr id="shipping-row"><td><select class="localflavor-generic-stateprovince"><option class="country-us" value="NY">New York</option><option class="country-ca" value="BC">British Columbia</option></select></td></tr>
</table></form>
</body>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	require.Len(t, widgets, 2)

	billing, shipping := widgets[0], widgets[1]
	assert.Equal(t, []string{"New York"}, visibleLabels(billing.Region))
	assert.Equal(t, []string{"British Columbia"}, visibleLabels(shipping.Region))

	require.NoError(t, shipping.ChangeCountry("US"))
	assert.Equal(t, []string{"New York"}, visibleLabels(shipping.Region))
	assert.Equal(t, []string{"New York"}, visibleLabels(billing.Region))

	require.NoError(t, billing.ChangeCountry("CA"))
	assert.Equal(t, []string{"British Columbia"}, visibleLabels(billing.Region))
	assert.Equal(t, []string{"New York"}, visibleLabels(shipping.Region))

	row := billing.Region.Row()
	require.NotNil(t, row)
	id, _ := getAttr(row, "id")
	assert.Equal(t, "billing-row", id)
}

func TestBind_NoFormFallsBackToDocument(t *testing.T) {
	src := `<div><select class="localflavor-generic-country"><option value="US">US</option></select></div>
<div><select class="localflavor-generic-stateprovince"><option class="country-us" value="OR">Oregon</option><option class="country-mx" value="SON">Sonora</option></select></div>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, []string{"Oregon"}, visibleLabels(widgets[0].Region))

	// no tr/p around the select: hiding is a no-op
	assert.Nil(t, widgets[0].Region.Row())
	require.NoError(t, widgets[0].ChangeCountry("US"))
	assert.False(t, widgets[0].Region.Hidden())
}

func TestBind_NoFormPairsEachRegionOnce(t *testing.T) {
	src := `<div><select class="localflavor-generic-country"><option value="US">US</option><option value="MX">MX</option></select></div>
<div><select class="localflavor-generic-country"><option value="MX">MX</option></select></div>
<div><select class="localflavor-generic-country"><option value="US">US</option></select></div>
<div><select class="localflavor-generic-stateprovince"><option class="country-us" value="OR">Oregon</option><option class="country-mx" value="SON">Sonora</option></select></div>
<div><select class="localflavor-generic-stateprovince"><option class="country-us" value="ID">Idaho</option><option class="country-mx" value="BCN">Baja California</option></select></div>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	// the third country select finds both region selects taken
	require.Len(t, widgets, 2)
	assert.NotSame(t, widgets[0].Region.Node(), widgets[1].Region.Node())

	assert.Equal(t, []string{"Oregon"}, visibleLabels(widgets[0].Region))
	assert.Equal(t, []string{"Baja California"}, visibleLabels(widgets[1].Region))

	// the first widget's pruning left the second widget's index whole
	require.NoError(t, widgets[0].ChangeCountry("MX"))
	assert.Equal(t, []string{"Sonora"}, visibleLabels(widgets[0].Region))
	assert.Equal(t, []string{"Baja California"}, visibleLabels(widgets[1].Region))
	assert.Equal(t, []string{"country-us", "country-mx"}, widgets[1].Filter.Index().Tags())
}

func TestBind_Errors(t *testing.T) {
	_, err := parse(t, `<p>nothing here</p>`).Bind()
	assert.ErrorIs(t, err, ErrNoCountrySelect)

	_, err = parse(t, `<form><select class="localflavor-generic-country"><option>US</option></select></form>`).Bind()
	assert.ErrorIs(t, err, ErrNoRegionSelect)
}

func TestBind_CustomClasses(t *testing.T) {
	src := `<form><p><select class="c"><option value="DE">DE</option></select></p><p><select class="r"><option class="country-de" value="BY">Bayern</option><option class="country-at" value="9">Wien</option></select></p></form>`
	widgets, err := parse(t, src).Bind(WithClasses("c", "r"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bayern"}, visibleLabels(widgets[0].Region))
}

func TestBind_UntaggedOptionRemoved(t *testing.T) {
	src := `<form><p><select class="localflavor-generic-country"><option value="US">US</option></select></p>
<p><select class="localflavor-generic-stateprovince"><option value="">---------</option><option class="extra country-us" value="WA">Washington</option></select></p></form>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	assert.Equal(t, []string{"Washington"}, visibleLabels(widgets[0].Region))
}

func TestBind_ExtraClassesSurviveChange(t *testing.T) {
	src := `<form><p><select class="localflavor-generic-country"><option value="US">US</option><option value="CA">CA</option></select></p>
<p><select class="localflavor-generic-stateprovince"><option class="extra country-us" value="WA">Washington</option><option class="country-ca" value="ON">Ontario</option></select></p></form>`
	widgets, err := parse(t, src).Bind()
	require.NoError(t, err)
	w := widgets[0]
	assert.Equal(t, []string{"Washington"}, visibleLabels(w.Region))

	require.NoError(t, w.ChangeCountry("CA"))
	require.NoError(t, w.ChangeCountry("US"))
	assert.Equal(t, []string{"Washington"}, visibleLabels(w.Region))
	assert.False(t, w.Region.Hidden())
}

func TestSetDisplayNone_PreservesOtherStyles(t *testing.T) {
	doc := parse(t, `<p style="color: red; display: block">x</p>`)
	p := findAll(doc.Root(), func(n *html.Node) bool { return n.Data == "p" })[0]

	setDisplayNone(p, true)
	style, _ := getAttr(p, "style")
	assert.Equal(t, "color: red; display: none", style)
	assert.True(t, isHidden(p))

	setDisplayNone(p, false)
	style, _ = getAttr(p, "style")
	assert.Equal(t, "color: red", style)
	assert.False(t, isHidden(p))
}

func TestBuildForm_RoundTrip(t *testing.T) {
	cat := catalog.Sample()
	doc := BuildForm(cat, FormOptions{Country: "CA", Region: "QC"})

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, `<option class="country-us" value="TX">Texas</option>`)
	assert.Contains(t, out, `<option class="country-ca" value="QC" selected="selected">Quebec</option>`)
	assert.Contains(t, out, `<select name="country" id="id_country" class="localflavor-generic-country">`)

	widgets, err := parse(t, out).Bind()
	require.NoError(t, err)
	w := widgets[0]
	assert.Equal(t, "CA", w.Country.SelectedValue())
	assert.Len(t, w.Region.Options(), len(cat.Lookup("CA").Regions))
	assert.Equal(t, cat.RegionCount(), w.Filter.Index().Len())

	require.NoError(t, w.ChangeCountry("PT"))
	assert.True(t, w.Region.Hidden())
}

func TestBuildForm_BindInPlace(t *testing.T) {
	doc := BuildForm(catalog.Sample(), FormOptions{})
	widgets, err := doc.Bind()
	require.NoError(t, err)
	assert.Equal(t, "US", widgets[0].Country.SelectedValue())
	assert.Len(t, widgets[0].Region.Options(), len(catalog.Sample().Lookup("US").Regions))
}
