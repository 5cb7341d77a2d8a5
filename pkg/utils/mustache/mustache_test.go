package mustache_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/citadelgrad/shiftit-release/pkg/utils/mustache"
)

func TestRender_Scalars(t *testing.T) {
	out, err := mustache.Render("{{name}} version {{version}}", map[string]any{
		"name":    "ShiftIt",
		"version": "2.1.3",
	})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("ShiftIt version 2.1.3")
}

func TestRender_MissingKeyRendersEmpty(t *testing.T) {
	out, err := mustache.Render("a {{nope}} b", map[string]any{})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("a  b")
}

func TestRender_NumericScalar(t *testing.T) {
	out, err := mustache.Render("size={{size}}", map[string]any{"size": int64(12345)})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("size=12345")
}

func TestRender_BoolSection(t *testing.T) {
	tmpl := "{{#ok}}yes{{/ok}}no"

	out, err := mustache.Render(tmpl, map[string]any{"ok": true})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("yesno")

	out, err = mustache.Render(tmpl, map[string]any{"ok": false})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("no")
}

func TestRender_MissingSectionSkipsBody(t *testing.T) {
	out, err := mustache.Render("{{#gone}}body{{/gone}}", map[string]any{})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("")
}

func TestRender_ListSection(t *testing.T) {
	tmpl := "{{#items}}- #{{number}} {{title}}\n{{/items}}"
	out, err := mustache.Render(tmpl, map[string]any{
		"items": []map[string]any{
			{"number": 10, "title": "Fix crash"},
			{"number": 12, "title": "Improve speed"},
		},
	})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("- #10 Fix crash\n- #12 Improve speed\n")
}

func TestRender_ListItemShadowsOuterScope(t *testing.T) {
	tmpl := "{{#items}}{{name}}/{{version}} {{/items}}"
	out, err := mustache.Render(tmpl, map[string]any{
		"version": "2.1.3",
		"items": []map[string]any{
			{"name": "a"},
			{"name": "b", "version": "override"},
		},
	})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("a/2.1.3 b/override ")
}

func TestRender_NestedSections(t *testing.T) {
	tmpl := "{{#outer}}[{{#items}}{{n}}{{/items}}]{{/outer}}"
	out, err := mustache.Render(tmpl, map[string]any{
		"outer": true,
		"items": []map[string]any{{"n": 1}, {"n": 2}},
	})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("[12]")
}

func TestRender_Deterministic(t *testing.T) {
	tmpl := "{{#has_issues}}{{#issues}}#{{number}} {{/issues}}{{/has_issues}}{{name}}"
	ctx := map[string]any{
		"has_issues": true,
		"issues":     []map[string]any{{"number": 1}, {"number": 2}},
		"name":       "ShiftIt",
	}

	first, err := mustache.Render(tmpl, ctx)
	gt.NoError(t, err)
	second, err := mustache.Render(tmpl, ctx)
	gt.NoError(t, err)
	gt.Value(t, first).Equal(second)
}

func TestRender_MalformedTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"unterminated tag", "hello {{name"},
		{"unclosed section", "{{#items}}body"},
		{"close without open", "body{{/items}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustache.Render(tt.tmpl, map[string]any{"items": true})
			gt.Error(t, err)
		})
	}
}
