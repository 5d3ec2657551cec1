package scaffold_test

import (
	"errors"
	"testing"

	"github.com/scaffoldkit/scaffold"
	"github.com/stretchr/testify/suite"
)

type DescriptorTestSuite struct {
	suite.Suite
}

func (suite *DescriptorTestSuite) TestPlugins() {
	suite.Run("Once Per Id", func() {
		descriptor, err := scaffold.NewDescriptorBuilder().
			AddPlugin(scaffold.PluginRef{ID: "java"}).
			AddPlugin(scaffold.PluginRef{ID: "groovy"}).
			AddPlugin(scaffold.PluginRef{ID: "java"}).
			Build()
		suite.Nil(err)
		suite.Len(descriptor.Plugins(), 2)
		suite.Equal("java", descriptor.Plugins()[0].ID)
		suite.Equal("groovy", descriptor.Plugins()[1].ID)
	})

	suite.Run("Merges Extension", func() {
		descriptor, err := scaffold.NewDescriptorBuilder().
			AddPlugin(scaffold.PluginRef{ID: "app", Extension: map[string]any{
				"testRuntime": "junit5",
				"runtime":     "none",
			}}).
			AddPlugin(scaffold.PluginRef{ID: "app", Versioned: true, Extension: map[string]any{
				"runtime": "netty",
			}}).
			Build()
		suite.Nil(err)
		plugin, ok := descriptor.Plugin("app")
		suite.True(ok)
		suite.True(plugin.Versioned)
		suite.Equal("junit5", plugin.Extension["testRuntime"])
		suite.Equal("netty", plugin.Extension["runtime"])
	})

	suite.Run("Immutable", func() {
		ext := map[string]any{"runtime": "netty"}
		descriptor, _ := scaffold.NewDescriptorBuilder().
			AddPlugin(scaffold.PluginRef{ID: "app", Extension: ext}).
			Build()
		ext["runtime"] = "jetty"
		plugin, _ := descriptor.Plugin("app")
		plugin.Extension["runtime"] = "tomcat"
		again, _ := descriptor.Plugin("app")
		suite.Equal("netty", again.Extension["runtime"])
	})

	suite.Run("Immutable Nested", func() {
		processing := map[string]any{"incremental": true, "annotations": []any{"com.example.*"}}
		build := scaffold.NewDescriptorBuilder().
			AddPlugin(scaffold.PluginRef{ID: "app", Extension: map[string]any{"processing": processing}})
		descriptor, err := build.Build()
		suite.Nil(err)
		processing["incremental"] = false
		processing["annotations"].([]any)[0] = "org.other.*"

		plugin, _ := descriptor.Plugin("app")
		nested := plugin.Extension["processing"].(map[string]any)
		nested["incremental"] = "mutated"
		nested["extra"] = "x"
		descriptor.Plugins()[0].Extension["processing"].(map[string]any)["incremental"] = "mutated"

		build.AddPlugin(scaffold.PluginRef{ID: "app", Extension: map[string]any{"runtime": "netty"}})

		again, _ := descriptor.Plugin("app")
		suite.Equal(map[string]any{
			"processing": map[string]any{
				"incremental": true,
				"annotations": []any{"com.example.*"},
			},
		}, again.Extension)
	})

	suite.Run("Merged Nested Not Shared", func() {
		override := map[string]any{"enabled": true}
		descriptor, err := scaffold.NewDescriptorBuilder().
			AddPlugin(scaffold.PluginRef{ID: "app"}).
			AddPlugin(scaffold.PluginRef{ID: "app", Extension: map[string]any{"aot": override}}).
			Build()
		suite.Nil(err)
		override["enabled"] = false
		plugin, _ := descriptor.Plugin("app")
		suite.Equal(true, plugin.Extension["aot"].(map[string]any)["enabled"])
	})

	suite.Run("Requires Id", func() {
		_, err := scaffold.NewDescriptorBuilder().AddPlugin(scaffold.PluginRef{}).Build()
		suite.ErrorIs(err, scaffold.ErrInvalidDescriptor)
	})
}

func (suite *DescriptorTestSuite) TestDependencies() {
	suite.Run("Once Per Scope", func() {
		descriptor, err := scaffold.NewDescriptorBuilder().
			AddDependency("com.fasterxml.jackson.core:jackson-databind", scaffold.Compile).
			AddDependency("io.micronaut:micronaut-http-client", scaffold.Test).
			AddDependency("com.fasterxml.jackson.core:jackson-databind", scaffold.Compile).
			AddDependency("io.micronaut:micronaut-http-client", scaffold.Compile).
			Build()
		suite.Nil(err)
		suite.Equal([]scaffold.DependencyRef{
			{"com.fasterxml.jackson.core:jackson-databind", scaffold.Compile},
			{"io.micronaut:micronaut-http-client", scaffold.Test},
			{"io.micronaut:micronaut-http-client", scaffold.Compile},
		}, descriptor.Dependencies())
		suite.Len(descriptor.DependenciesIn(scaffold.Compile), 2)
		suite.True(descriptor.HasDependency("io.micronaut:micronaut-http-client", scaffold.Test))
		suite.False(descriptor.HasDependency("io.micronaut:micronaut-http-client", scaffold.Runtime))
	})

	suite.Run("Coordinate Parts", func() {
		dep := scaffold.DependencyRef{Coordinate: "io.micronaut:micronaut-runtime", Scope: scaffold.Compile}
		suite.Equal("io.micronaut", dep.Group())
		suite.Equal("micronaut-runtime", dep.Artifact())
	})

	suite.Run("Malformed", func() {
		_, err := scaffold.NewDescriptorBuilder().
			AddDependency("jackson", scaffold.Compile).
			AddDependency("a:b:c", scaffold.Compile).
			AddDependency("a:b", "provided").
			Build()
		suite.ErrorIs(err, scaffold.ErrInvalidDescriptor)
		suite.Contains(err.Error(), "3 errors occurred")
	})
}

func (suite *DescriptorTestSuite) TestRepositories() {
	suite.Run("Once Per Url", func() {
		descriptor, err := scaffold.NewDescriptorBuilder().
			AddRepository("central", "https://repo.maven.apache.org/maven2").
			AddRepository("mavenCentral", "https://repo.maven.apache.org/maven2").
			Build()
		suite.Nil(err)
		suite.Equal([]scaffold.RepositoryRef{
			{"central", "https://repo.maven.apache.org/maven2"},
		}, descriptor.Repositories())
	})

	suite.Run("Invalid Url", func() {
		_, err := scaffold.NewDescriptorBuilder().
			AddRepository("broken", "not a url").
			Build()
		var descriptorErr *scaffold.DescriptorError
		suite.True(errors.As(err, &descriptorErr))
		suite.Contains(descriptorErr.Reason, "broken")
	})
}

func (suite *DescriptorTestSuite) TestProperties() {
	suite.Run("Last Write Wins", func() {
		descriptor, err := scaffold.NewDescriptorBuilder().
			SetProperty("jdkVersion", "17").
			SetProperty("group", "com.example").
			SetProperty("jdkVersion", "21").
			Build()
		suite.Nil(err)
		suite.Equal([]scaffold.Property{
			{"jdkVersion", "21"},
			{"group", "com.example"},
		}, descriptor.Properties())
	})

	suite.Run("Managed Excluded", func() {
		descriptor, err := scaffold.NewDescriptorBuilder("micronautRuntime").
			SetProperty("micronautRuntime", "netty").
			SetManagedProperty("micronautRuntime", "netty").
			SetProperty("jdkVersion", "17").
			Build()
		suite.Nil(err)
		_, ok := descriptor.Property("micronautRuntime")
		suite.False(ok)
		suite.Equal([]scaffold.Property{{"jdkVersion", "17"}}, descriptor.Properties())
		runtime, ok := descriptor.ManagedProperty("micronautRuntime")
		suite.True(ok)
		suite.Equal("netty", runtime)
	})

	suite.Run("Managed Promoted", func() {
		descriptor, err := scaffold.NewDescriptorBuilder("micronautRuntime").
			SetProperty("micronautRuntime", "jetty").
			Build()
		suite.Nil(err)
		suite.Empty(descriptor.Properties())
		suite.Equal([]scaffold.Property{{"micronautRuntime", "jetty"}}, descriptor.ManagedProperties())
	})

	suite.Run("Unmanaged Key", func() {
		_, err := scaffold.NewDescriptorBuilder().
			SetManagedProperty("micronautRuntime", "netty").
			Build()
		suite.ErrorIs(err, scaffold.ErrInvalidDescriptor)
	})
}

func (suite *DescriptorTestSuite) TestCoordinates() {
	descriptor, err := scaffold.NewDescriptorBuilder().
		AddDependency("io.micronaut:micronaut-runtime", scaffold.Compile).
		AddDependency("io.micronaut:micronaut-runtime", scaffold.Runtime).
		AddPlugin(scaffold.PluginRef{ID: "java"}).
		AddPlugin(scaffold.PluginRef{ID: "io.micronaut.application", Versioned: true}).
		Build()
	suite.Nil(err)
	suite.Equal([]string{
		"io.micronaut:micronaut-runtime",
		"io.micronaut.application",
	}, descriptor.Coordinates())
}

func TestDescriptorTestSuite(t *testing.T) {
	suite.Run(t, new(DescriptorTestSuite))
}
