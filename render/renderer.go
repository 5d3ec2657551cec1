// Package render implements scaffold.TemplateRenderer with
// text/template sources read from an fs.FS.
package render

import (
	"bytes"
	"errors"
	"io/fs"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"text/template"

	"github.com/scaffoldkit/scaffold"
)

// Renderer renders templates named "<id><suffix>" in its fs.FS.
// Parsed templates are cached and safe for concurrent use.
type Renderer struct {
	fsys   fs.FS
	suffix string
	funcs  template.FuncMap
	lock   sync.Mutex
	cache  atomic.Pointer[map[string]*template.Template]
}

// New creates a Renderer reading templates from fsys.
func New(
	fsys   fs.FS,
	config ...func(*Renderer),
) *Renderer {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	r := &Renderer{fsys: fsys, suffix: ".tmpl", funcs: defaultFuncs()}
	for _, configure := range config {
		if configure != nil {
			configure(r)
		}
	}
	return r
}

// Suffix sets the file suffix appended to template ids.
func Suffix(suffix string) func(*Renderer) {
	return func(r *Renderer) {
		r.suffix = suffix
	}
}

// Funcs adds template functions.
func Funcs(funcs template.FuncMap) func(*Renderer) {
	return func(r *Renderer) {
		for name, fn := range funcs {
			r.funcs[name] = fn
		}
	}
}

func (r *Renderer) Render(templateID string, data any) ([]byte, error) {
	tmpl, err := r.template(templateID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &scaffold.TemplateRenderError{TemplateID: templateID, Reason: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template(templateID string) (*template.Template, error) {
	if cache := r.cache.Load(); cache != nil {
		if tmpl, ok := (*cache)[templateID]; ok {
			return tmpl, nil
		}
	}

	// copy-on-write, reads dominate
	r.lock.Lock()
	defer r.lock.Unlock()

	var cc map[string]*template.Template
	if cache := r.cache.Load(); cache != nil {
		if tmpl, ok := (*cache)[templateID]; ok {
			return tmpl, nil
		}
		cc = maps.Clone(*cache)
	} else {
		cc = make(map[string]*template.Template, 1)
	}

	source, err := fs.ReadFile(r.fsys, templateID+r.suffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &scaffold.TemplateNotFoundError{TemplateID: templateID}
		}
		return nil, &scaffold.TemplateRenderError{TemplateID: templateID, Reason: err}
	}
	tmpl, err := template.New(templateID).
		Option("missingkey=error").
		Funcs(r.funcs).
		Parse(string(source))
	if err != nil {
		return nil, &scaffold.TemplateRenderError{TemplateID: templateID, Reason: err}
	}

	cc[templateID] = tmpl
	r.cache.Store(&cc)
	return tmpl, nil
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,
		"join":  strings.Join,
		"keys": func(m map[string]any) []string {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys
		},
	}
}
