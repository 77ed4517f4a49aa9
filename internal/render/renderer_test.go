package render

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/pablasso/gantitt/internal/gantt"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		ScriptAsset:     {Data: []byte("/* frappe gantt */ var Gantt = function() {};")},
		StylesheetAsset: {Data: []byte(".gantt { }")},
	}
}

func parseDoc(t *testing.T, text string) *gantt.Document {
	t.Helper()
	doc, err := gantt.Parse(text, gantt.Options{})
	require.NoError(t, err)
	return doc
}

// findByID walks the parsed artifact looking for an element with the id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, tag string, out *[]string) {
	if n.Type == html.ElementNode && n.Data == tag && n.FirstChild != nil {
		*out = append(*out, n.FirstChild.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, tag, out)
	}
}

func TestRenderer_Render(t *testing.T) {
	doc := parseDoc(t, strings.Join([]string{
		"title: Relaunch",
		"state: Old site",
		"goals: New site",
		"state label: Now",
		"define class: design #f00 #0f0",
		"task: Design",
		"date: 2024-1",
		"class: design",
		"progress: 50",
		"task: Build",
		"date: 2024-2-5 2024-2-20",
	}, "\n"))

	out, err := New(testAssets()).Render(doc)
	require.NoError(t, err)

	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	assert.NotNil(t, findByID(root, "gantt"), "chart element missing")
	assert.NotNil(t, findByID(root, "title"), "title element missing")

	var titles []string
	collectText(root, "title", &titles)
	require.Len(t, titles, 1)
	assert.Equal(t, "Relaunch", titles[0])

	var scripts []string
	collectText(root, "script", &scripts)
	require.Len(t, scripts, 2)
	assert.Contains(t, scripts[0], "var Gantt = function() {};")
	assert.Contains(t, scripts[1], `const title = "Relaunch";`)
	assert.Contains(t, scripts[1], `const stateLabel = "Now";`)
	assert.Contains(t, scripts[1], `const goalsLabel = "Goals";`)
	assert.Contains(t, scripts[1], `"start": "2024-01-01"`)
	assert.Contains(t, scripts[1], `"end": "2024-01-31"`)
	assert.Contains(t, scripts[1], `"custom_class": "design"`)
	assert.Less(t, strings.Index(scripts[1], `"Design"`), strings.Index(scripts[1], `"Build"`))

	var styles []string
	collectText(root, "style", &styles)
	require.Len(t, styles, 2)
	assert.Contains(t, styles[0], ".gantt { }")
	assert.Contains(t, styles[1], "max-width: 1200px")
	assert.Contains(t, styles[1], ".gantt .bar-wrapper.design .bar { fill: #f00; }")
	assert.Contains(t, styles[1], ".legend .design.done { background-color: #0f0; }")

	assert.Contains(t, out, `class="swatch design todo"`)
	assert.NotContains(t, out, "/*tasks*/")
	assert.NotContains(t, out, "/*logo*/")
}

func TestRenderer_Render_EscapesText(t *testing.T) {
	doc := parseDoc(t, "title: </script><script>alert(1)</script>\ntask: A\ndate: 2024-1")

	out, err := New(testAssets()).Render(doc)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert(1)")
	assert.Contains(t, out, `</script>`)
	assert.Contains(t, out, "<title>&lt;/script&gt;")
}

func TestRenderer_Render_ClassCannotCloseStyle(t *testing.T) {
	plain, err := New(testAssets()).Render(parseDoc(t, "define class: x red\ntask: a\ndate: 2024-1"))
	require.NoError(t, err)
	hostile, err := New(testAssets()).Render(parseDoc(t, "define class: x red</style><script>alert(1)</script>\ntask: a\ndate: 2024-1"))
	require.NoError(t, err)

	countScripts := func(out string) []string {
		root, err := html.Parse(strings.NewReader(out))
		require.NoError(t, err)
		var scripts []string
		collectText(root, "script", &scripts)
		return scripts
	}

	scripts := countScripts(hostile)
	assert.Len(t, scripts, len(countScripts(plain)))
	for _, s := range scripts {
		assert.NotContains(t, s, "alert(1)")
	}

	root, err := html.Parse(strings.NewReader(hostile))
	require.NoError(t, err)
	var styles []string
	collectText(root, "style", &styles)
	require.Len(t, styles, 2)
	assert.Contains(t, styles[1], `fill: red\3c /style\3e `)
}

func TestRenderer_Render_Logo(t *testing.T) {
	assets := testAssets()
	assets[LogoAsset] = &fstest.MapFile{Data: []byte(`<svg id="logo-mark"></svg>`)}

	out, err := New(assets).Render(parseDoc(t, "task: A\ndate: 2024-1"))
	require.NoError(t, err)

	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.NotNil(t, findByID(root, "logo-mark"))
}

func TestRenderer_Render_TemplateOverride(t *testing.T) {
	assets := testAssets()
	assets[TemplateAsset] = &fstest.MapFile{Data: []byte("T=/*title*/ N=/*tasks*/ /*unknown*/")}
	assets[ChartCSSAsset] = &fstest.MapFile{Data: []byte("custom {}")}

	r := New(assets)
	out, err := r.Render(parseDoc(t, "title: X\ntask: A\ndate: 2024-1"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `T="X" N=[`))
	assert.True(t, strings.HasSuffix(out, "/*unknown*/"))

	values, err := r.Values(parseDoc(t, "task: A\ndate: 2024-1"))
	require.NoError(t, err)
	assert.Equal(t, "custom {}", values["css"])
	assert.Equal(t, "Gantt chart", values["page_title"])
	assert.Equal(t, `""`, values["title"])
}

func TestRenderer_Values_EmptyOverride(t *testing.T) {
	assets := testAssets()
	assets[ChartCSSAsset] = &fstest.MapFile{Data: []byte{}}

	values, err := New(assets).Values(parseDoc(t, "task: A\ndate: 2024-1"))
	require.NoError(t, err)
	assert.Empty(t, values["css"])

	builtinValues, err := New(testAssets()).Values(parseDoc(t, "task: A\ndate: 2024-1"))
	require.NoError(t, err)
	assert.Contains(t, builtinValues["css"], "max-width: 1200px")
}

func TestRenderer_Render_MissingAssets(t *testing.T) {
	doc := parseDoc(t, "task: A\ndate: 2024-1")

	tests := []struct {
		name    string
		assets  fs.FS
		missing string
	}{
		{"no asset directory", nil, ScriptAsset},
		{"missing script", fstest.MapFS{StylesheetAsset: {Data: []byte("x")}}, ScriptAsset},
		{"missing stylesheet", fstest.MapFS{ScriptAsset: {Data: []byte("x")}}, StylesheetAsset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.assets).Render(doc)
			require.Error(t, err)

			var ae *AssetError
			require.True(t, errors.As(err, &ae), "expected *AssetError, got %T", err)
			assert.Equal(t, tc.missing, ae.Name)
		})
	}
}

func TestRenderer_Template_Builtin(t *testing.T) {
	tmpl, err := New(nil).Template()
	require.NoError(t, err)
	for _, name := range []string{"tasks", "css", "frappe_js", "frappe_css", "logo", "legend", "title", "state", "goals", "state_label", "goals_label"} {
		assert.Contains(t, tmpl.Text, "/*"+name+"*/", "built-in template lacks %s", name)
	}
}
