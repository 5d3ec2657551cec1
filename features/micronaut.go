package features

import "github.com/scaffoldkit/scaffold"

type (
	// MicronautBuildPlugin applies the micronaut gradle plugin.
	MicronautBuildPlugin struct{}

	// KotlinBuildPlugins applies the kotlin gradle plugins.
	KotlinBuildPlugins struct{}

	// Netty selects the netty server runtime.  The runtime is carried
	// by the micronaut plugin DSL, never as a generic property.
	Netty struct{}
)

const MicronautApplicationPlugin = "io.micronaut.application"


// MicronautBuildPlugin

func (m *MicronautBuildPlugin) Key() scaffold.Key {
	return MicronautBuildPluginKey
}

func (m *MicronautBuildPlugin) Requires() []scaffold.Key {
	return []scaffold.Key{GradleKey}
}

func (m *MicronautBuildPlugin) Contribute(
	ctx   *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddPlugin(scaffold.PluginRef{
		ID:        MicronautApplicationPlugin,
		Versioned: true,
		Extension: map[string]any{
			"testRuntime": testRuntime(ctx.TestFramework()),
			"annotations": ctx.Project().Package + ".*",
		},
	})
	return nil
}

func testRuntime(framework scaffold.TestFramework) string {
	switch framework {
	case scaffold.Spock:
		return "spock2"
	case scaffold.Kotest:
		return "kotest5"
	}
	return "junit5"
}


// KotlinBuildPlugins

func (k *KotlinBuildPlugins) Key() scaffold.Key {
	return KotlinBuildPluginsKey
}

func (k *KotlinBuildPlugins) Requires() []scaffold.Key {
	return []scaffold.Key{GradleKey}
}

func (k *KotlinBuildPlugins) Contribute(
	_     *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddPlugin(scaffold.PluginRef{ID: "org.jetbrains.kotlin.jvm", Versioned: true}).
		AddPlugin(scaffold.PluginRef{ID: "org.jetbrains.kotlin.plugin.allopen", Versioned: true}).
		AddPlugin(scaffold.PluginRef{ID: "com.google.devtools.ksp", Versioned: true})
	return nil
}


// Netty

func (n *Netty) Key() scaffold.Key {
	return NettyKey
}

func (n *Netty) Excludes() []scaffold.Key {
	return []scaffold.Key{SpringBootKey}
}

func (n *Netty) Contribute(
	ctx   *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddDependency("io.micronaut:micronaut-http-server-netty", scaffold.Compile).
		SetManagedProperty(RuntimeProperty, "netty")
	if ctx.Has(MicronautBuildPluginKey) {
		build.AddPlugin(scaffold.PluginRef{
			ID:        MicronautApplicationPlugin,
			Extension: map[string]any{"runtime": "netty"},
		})
	}
	return nil
}
