// Package views embeds the HTML templates of the farm stand pages and builds
// the template set gin renders from.
//
// Every page is declared with {{define "<dir>/<page>"}} so farms/index and
// products/index do not collide; handlers refer to pages by that name.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var files embed.FS

// Pages lists every page name the handlers render.
var Pages = []string{
	"farms/index", "farms/new", "farms/show",
	"products/index", "products/new", "products/show", "products/edit",
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// title capitalizes category labels ("vegetable" → "Vegetable").
		// A Caser keeps state, so each call gets its own.
		"title": func(s string) string { return cases.Title(language.English).String(s) },
		"money": func(f float64) string { return "$" + strconv.FormatFloat(f, 'f', 2, 64) },
		"dict":  dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// Load parses the embedded templates and checks that every page is defined.
func Load() (*template.Template, error) {
	t, err := template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.tmpl", "templates/*/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, p := range Pages {
		if t.Lookup(p) == nil {
			return nil, fmt.Errorf("template %q not defined", p)
		}
	}
	return t, nil
}

// MustLoad is Load that panics on error; the templates are compiled in, so a
// failure is a build defect.
func MustLoad() *template.Template {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}
