package writer

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/scaffoldkit/scaffold"
)

// Sources are the collaborators that turn an artifact into bytes.
type Sources struct {
	Renderer scaffold.TemplateRenderer
	Loader   scaffold.ResourceLoader
	Catalog  scaffold.DependencyCatalog
}

// Content materializes a single artifact.  Text contexts carrying a
// descriptor receive the catalog versions of its coordinates.
func (s Sources) Content(artifact scaffold.Artifact) ([]byte, error) {
	switch artifact.Kind {
	case scaffold.Text:
		if scaffold.IsNil(s.Renderer) {
			return nil, fmt.Errorf("no renderer for %q", artifact.Path)
		}
		data := artifact.Context
		if tc, ok := data.(*scaffold.TemplateContext); ok && tc != nil {
			versions, err := s.versions(tc.Descriptor)
			if err != nil {
				return nil, err
			}
			data = tc.WithVersions(versions)
		}
		return s.Renderer.Render(artifact.Template, data)
	case scaffold.Binary, scaffold.VerbatimCopy:
		if scaffold.IsNil(s.Loader) {
			return nil, fmt.Errorf("no loader for %q", artifact.Path)
		}
		return s.Loader.Load(artifact.Resource)
	}
	return nil, fmt.Errorf("%w: kind %v", scaffold.ErrInvalidArtifact, artifact.Kind)
}

func (s Sources) versions(
	descriptor *scaffold.BuildDescriptor,
) (map[string]string, error) {
	versions := make(map[string]string)
	if descriptor == nil || scaffold.IsNil(s.Catalog) {
		return versions, nil
	}
	var errs error
	for _, coordinate := range descriptor.Coordinates() {
		version, err := s.Catalog.ResolveVersion(coordinate)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		versions[coordinate] = version
	}
	return versions, errs
}
