// Package mustache implements the minimal logic-template subset used by the
// release documents: scalar substitution, conditional sections and list
// iteration. It is deliberately not a general templating engine.
package mustache

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Render substitutes {{key}} scalars and expands {{#key}}...{{/key}} sections
// in tmpl using ctx. A section value may be a bool (gates the body), a
// []map[string]any (renders the body once per item, with the item's keys
// shadowing the outer context), or any other non-nil value (renders once).
// Keys missing from the context render as empty text. Unterminated tags and
// unbalanced sections are an error.
func Render(tmpl string, ctx map[string]any) (string, error) {
	return render(tmpl, []map[string]any{ctx})
}

func render(tmpl string, scope []map[string]any) (string, error) {
	var b strings.Builder

	for len(tmpl) > 0 {
		open := strings.Index(tmpl, openDelim)
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		b.WriteString(tmpl[:open])

		rest := tmpl[open+len(openDelim):]
		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return "", goerr.New("unterminated template tag", goerr.V("near", clip(rest)))
		}
		tag := strings.TrimSpace(rest[:end])
		tmpl = rest[end+len(closeDelim):]

		switch {
		case strings.HasPrefix(tag, "#"):
			name := tag[1:]
			body, after, err := sectionBody(tmpl, name)
			if err != nil {
				return "", err
			}
			tmpl = after

			out, err := renderSection(body, scope, lookup(scope, name))
			if err != nil {
				return "", err
			}
			b.WriteString(out)

		case strings.HasPrefix(tag, "/"):
			return "", goerr.New("section close without open", goerr.V("section", tag[1:]))

		default:
			if v := lookup(scope, tag); v != nil {
				b.WriteString(fmt.Sprint(v))
			}
		}
	}

	return b.String(), nil
}

func renderSection(body string, scope []map[string]any, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case bool:
		if !v {
			return "", nil
		}
		return render(body, scope)
	case []map[string]any:
		var b strings.Builder
		for _, item := range v {
			// Full slice expression keeps the iterations from sharing a
			// backing array through append.
			out, err := render(body, append(scope[:len(scope):len(scope)], item))
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}
		return b.String(), nil
	default:
		return render(body, scope)
	}
}

// sectionBody splits tmpl at the {{/name}} matching the already consumed
// {{#name}}, honoring nested sections of the same name.
func sectionBody(tmpl, name string) (body, after string, err error) {
	depth := 1
	pos := 0

	for {
		open := strings.Index(tmpl[pos:], openDelim)
		if open < 0 {
			return "", "", goerr.New("unclosed template section", goerr.V("section", name))
		}
		tagStart := pos + open + len(openDelim)

		end := strings.Index(tmpl[tagStart:], closeDelim)
		if end < 0 {
			return "", "", goerr.New("unterminated template tag", goerr.V("near", clip(tmpl[tagStart:])))
		}
		tag := strings.TrimSpace(tmpl[tagStart : tagStart+end])
		tagEnd := tagStart + end + len(closeDelim)

		switch tag {
		case "#" + name:
			depth++
		case "/" + name:
			depth--
			if depth == 0 {
				return tmpl[:pos+open], tmpl[tagEnd:], nil
			}
		}
		pos = tagEnd
	}
}

// lookup resolves name against the scope stack, innermost first.
func lookup(scope []map[string]any, name string) any {
	for i := len(scope) - 1; i >= 0; i-- {
		if v, ok := scope[i][name]; ok {
			return v
		}
	}
	return nil
}

func clip(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}
