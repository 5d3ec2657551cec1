// Package features provides the build features of a generated JVM
// project: the gradle and maven build tools, the Spring Boot build
// variant, the build plugins they imply and a few library features.
package features

import (
	"embed"
	"io/fs"

	"github.com/scaffoldkit/scaffold"
)

const (
	GradleKey               scaffold.Key = "gradle"
	MavenKey                scaffold.Key = "maven"
	SpringBootKey           scaffold.Key = "spring-boot"
	SpringBootPluginKey     scaffold.Key = "spring-boot-gradle-plugin"
	MicronautBuildPluginKey scaffold.Key = "micronaut-build-plugin"
	KotlinBuildPluginsKey   scaffold.Key = "kotlin-build-plugins"
	NettyKey                scaffold.Key = "netty-server"
	SerdeJacksonKey         scaffold.Key = "serialization-jackson"
	JacksonXmlKey           scaffold.Key = "jackson-xml"
	JUnitKey                scaffold.Key = "junit"
	SpockKey                scaffold.Key = "spock"
	KotestKey               scaffold.Key = "kotest"
)

// RuntimeProperty is the managed property naming the server runtime.
const RuntimeProperty = "micronautRuntime"

//go:embed templates
var templates embed.FS

// Templates returns the text templates referenced by the features.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// All returns a new instance of every feature in registration order.
func All() []scaffold.Feature {
	return []scaffold.Feature{
		&Gradle{},
		&Maven{},
		&SpringBoot{},
		&SpringBootPlugin{},
		&MicronautBuildPlugin{},
		&KotlinBuildPlugins{},
		&Netty{},
		SerdeJackson(),
		JacksonXml(),
		JUnit(),
		Spock(),
		Kotest(),
	}
}

// Register adds every feature to registry.
func Register(registry *scaffold.Registry) error {
	for _, feature := range All() {
		if err := registry.Register(feature); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns an unsealed registry holding every feature.
func NewRegistry() (*scaffold.Registry, error) {
	return scaffold.NewRegistry(All()...)
}

// IsSpringBoot reports whether the generation is a Spring Boot build.
func IsSpringBoot(ctx *scaffold.ResolutionContext) bool {
	return ctx.Has(SpringBootKey)
}

var mavenCentral = scaffold.RepositoryRef{
	Name: "mavenCentral",
	URL:  "https://repo.maven.apache.org/maven2",
}
