package features

import "github.com/scaffoldkit/scaffold"

type (
	// SpringBoot is the alternate build variant.  It replaces the
	// micronaut build plugin with the spring boot plugins and switches
	// the gradle templates.
	SpringBoot struct{}

	// SpringBootPlugin applies the spring boot gradle plugins.
	SpringBootPlugin struct{}
)


// SpringBoot

func (s *SpringBoot) Key() scaffold.Key {
	return SpringBootKey
}

func (s *SpringBoot) Excludes() []scaffold.Key {
	return []scaffold.Key{MicronautBuildPluginKey}
}

func (s *SpringBoot) Implies(ctx *scaffold.ResolutionContext) []scaffold.Key {
	if ctx.BuildTool().IsGradle() {
		return []scaffold.Key{SpringBootPluginKey}
	}
	return nil
}

func (s *SpringBoot) Contribute(
	_     *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddDependency("org.springframework.boot:spring-boot-starter", scaffold.Compile).
		AddDependency("org.springframework.boot:spring-boot-starter-test", scaffold.Test)
	return nil
}


// SpringBootPlugin

func (s *SpringBootPlugin) Key() scaffold.Key {
	return SpringBootPluginKey
}

func (s *SpringBootPlugin) Requires() []scaffold.Key {
	return []scaffold.Key{GradleKey, SpringBootKey}
}

func (s *SpringBootPlugin) Contribute(
	_     *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddPlugin(scaffold.PluginRef{ID: "org.springframework.boot", Versioned: true}).
		AddPlugin(scaffold.PluginRef{ID: "io.spring.dependency-management", Versioned: true})
	return nil
}
