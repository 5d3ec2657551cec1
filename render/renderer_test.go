package render_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"text/template"

	"github.com/scaffoldkit/scaffold"
	"github.com/scaffoldkit/scaffold/render"
	"github.com/stretchr/testify/suite"
)

type RendererTestSuite struct {
	suite.Suite
	templates fstest.MapFS
}

func (suite *RendererTestSuite) SetupTest() {
	suite.templates = fstest.MapFS{
		"settings.tmpl":    {Data: []byte(`rootProject.name = {{quote .Name}}`)},
		"gradle/deps.tmpl": {Data: []byte(`{{join .Deps ", "}}`)},
		"ext.tmpl":         {Data: []byte(`{{range keys .Ext}}{{.}};{{end}}`)},
		"values.tmpl":      {Data: []byte(`{{.Values.missing}}`)},
		"broken.tmpl":      {Data: []byte(`{{if}}`)},
		"settings.gotmpl":  {Data: []byte(`name={{.Name}}`)},
		"upper.tmpl":       {Data: []byte(`{{upper .Name}}`)},
	}
}

func (suite *RendererTestSuite) TestRender() {
	renderer := render.New(suite.templates)

	suite.Run("Quote", func() {
		out, err := renderer.Render("settings", map[string]any{"Name": "demo"})
		suite.Nil(err)
		suite.Equal(`rootProject.name = "demo"`, string(out))
	})

	suite.Run("Join", func() {
		out, err := renderer.Render("gradle/deps", map[string]any{"Deps": []string{"a", "b"}})
		suite.Nil(err)
		suite.Equal("a, b", string(out))
	})

	suite.Run("Keys", func() {
		out, err := renderer.Render("ext", map[string]any{"Ext": map[string]any{"runtime": 1, "annotations": 2}})
		suite.Nil(err)
		suite.Equal("annotations;runtime;", string(out))
	})

	suite.Run("Cached", func() {
		first, _ := renderer.Render("settings", map[string]any{"Name": "a"})
		delete(suite.templates, "settings.tmpl")
		second, err := renderer.Render("settings", map[string]any{"Name": "b"})
		suite.Nil(err)
		suite.NotEqual(string(first), string(second))
	})
}

func (suite *RendererTestSuite) TestErrors() {
	renderer := render.New(suite.templates)

	suite.Run("Not Found", func() {
		_, err := renderer.Render("pom", nil)
		var notFound *scaffold.TemplateNotFoundError
		suite.True(errors.As(err, &notFound))
		suite.Equal("pom", notFound.TemplateID)
	})

	suite.Run("Missing Key", func() {
		_, err := renderer.Render("values", map[string]any{"Values": map[string]any{}})
		var renderErr *scaffold.TemplateRenderError
		suite.True(errors.As(err, &renderErr))
		suite.Equal("values", renderErr.TemplateID)
	})

	suite.Run("Parse", func() {
		_, err := renderer.Render("broken", nil)
		suite.ErrorIs(err, scaffold.ErrTemplateRender)
	})
}

func (suite *RendererTestSuite) TestConfig() {
	suite.Run("Suffix", func() {
		renderer := render.New(suite.templates, render.Suffix(".gotmpl"))
		out, err := renderer.Render("settings", map[string]any{"Name": "demo"})
		suite.Nil(err)
		suite.Equal("name=demo", string(out))
	})

	suite.Run("Funcs", func() {
		renderer := render.New(suite.templates, render.Funcs(template.FuncMap{
			"upper": strings.ToUpper,
		}))
		out, err := renderer.Render("upper", map[string]any{"Name": "demo"})
		suite.Nil(err)
		suite.Equal("DEMO", string(out))
	})
}

func (suite *RendererTestSuite) TestConcurrent() {
	renderer := render.New(suite.templates)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := renderer.Render("gradle/deps", map[string]any{"Deps": []string{"x"}})
			suite.Nil(err)
			suite.Equal("x", string(out))
		}()
	}
	wg.Wait()
}

func TestRendererTestSuite(t *testing.T) {
	suite.Run(t, new(RendererTestSuite))
}
