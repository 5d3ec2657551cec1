package scaffold

import "context"

type (
	// TemplateRenderer renders a template id with a context.
	// Fails with TemplateNotFoundError or TemplateRenderError.
	TemplateRenderer interface {
		Render(templateID string, data any) ([]byte, error)
	}

	// ResourceLoader loads binary and verbatim resources.
	// Fails with ResourceNotFoundError.
	ResourceLoader interface {
		Load(resource string) ([]byte, error)
	}

	// DependencyCatalog supplies concrete versions.
	// Fails with UnresolvedCoordinateError.
	DependencyCatalog interface {
		ResolveVersion(coordinate string) (string, error)
	}

	// ProjectWriter materializes a whole ArtifactPlan.  Failures are
	// reported per artifact in the Report and aggregated in the error.
	ProjectWriter interface {
		Write(ctx context.Context, plan *ArtifactPlan) (*Report, error)
	}

	// TemplateContext is the data handed to text templates.
	// Versions is filled in by the writer from a DependencyCatalog.
	TemplateContext struct {
		Project    Project
		Options    Options
		Features   []Key
		Descriptor *BuildDescriptor
		Values     map[string]any
		Versions   map[string]string
	}
)

// Has reports whether the feature was resolved for the run.
func (c *TemplateContext) Has(key Key) bool {
	for _, f := range c.Features {
		if f == key {
			return true
		}
	}
	return false
}

// Version returns the catalog version of coordinate.
func (c *TemplateContext) Version(coordinate string) string {
	return c.Versions[coordinate]
}

// WithVersions returns a copy of the context carrying versions.
func (c *TemplateContext) WithVersions(versions map[string]string) *TemplateContext {
	clone := *c
	clone.Versions = versions
	return &clone
}
