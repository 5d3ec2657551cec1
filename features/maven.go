package features

import "github.com/scaffoldkit/scaffold"

// Maven governs the maven build files.  It is a default feature
// whenever the build tool is maven.
type Maven struct{}

func (m *Maven) Key() scaffold.Key {
	return MavenKey
}

func (m *Maven) Excludes() []scaffold.Key {
	return []scaffold.Key{GradleKey}
}

func (m *Maven) Default(ctx *scaffold.ResolutionContext) bool {
	return ctx.BuildTool() == scaffold.Maven
}

func (m *Maven) Contribute(
	_     *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddRepository(mavenCentral.Name, mavenCentral.URL)
	return nil
}

func (m *Maven) Artifacts(ctx *scaffold.PlanContext) ([]scaffold.Artifact, error) {
	tc := ctx.TemplateContext(map[string]any{
		"dependencies": mavenDependencies(ctx.Descriptor),
		"properties":   append(ctx.Descriptor.Properties(), ctx.Descriptor.ManagedProperties()...),
	})
	return []scaffold.Artifact{
		scaffold.CopyArtifact("mavenWrapperProperties",
			".mvn/wrapper/maven-wrapper.properties", "maven/wrapper/maven-wrapper.properties", false),
		scaffold.CopyArtifact("mavenWrapper", "mvnw", "maven/mvnw", true),
		scaffold.CopyArtifact("mavenWrapperCmd", "mvnw.cmd", "maven/mvnw.cmd", false),
		scaffold.TextArtifact("build", ctx.BuildTool().BuildFileName(), "maven/pom", tc),
		scaffold.TextArtifact("gitignore", ".gitignore", "gitignore", tc),
	}, nil
}

type mavenDependency struct {
	scaffold.DependencyRef
	MavenScope string
}

func mavenDependencies(descriptor *scaffold.BuildDescriptor) []mavenDependency {
	var deps []mavenDependency
	for _, dep := range descriptor.Dependencies() {
		var scope string
		switch dep.Scope {
		case scaffold.Compile:
			scope = "compile"
		case scaffold.Runtime:
			scope = "runtime"
		case scaffold.Test:
			scope = "test"
		default:
			// annotation processors belong to the compiler plugin
			continue
		}
		deps = append(deps, mavenDependency{dep, scope})
	}
	return deps
}
