package features

import (
	"strconv"

	"github.com/scaffoldkit/scaffold"
)

type (
	// Gradle governs every gradle build file of the project.
	// It is a default feature whenever the build tool is gradle.
	Gradle struct{}

	gradleDependency struct {
		Configuration string
		Coordinate    string
	}

	micronautBlock struct {
		Runtime     string
		TestRuntime string
		Annotations string
	}
)

const (
	WrapperJar        = "gradle/wrapper/gradle-wrapper.jar"
	WrapperProperties = "gradle/wrapper/gradle-wrapper.properties"
)

var groovyPlugin = scaffold.PluginRef{ID: "groovy"}

func (g *Gradle) Key() scaffold.Key {
	return GradleKey
}

func (g *Gradle) Excludes() []scaffold.Key {
	return []scaffold.Key{MavenKey}
}

func (g *Gradle) Default(ctx *scaffold.ResolutionContext) bool {
	return ctx.BuildTool().IsGradle()
}

func (g *Gradle) Implies(ctx *scaffold.ResolutionContext) []scaffold.Key {
	if IsSpringBoot(ctx) {
		return nil
	}
	keys := []scaffold.Key{MicronautBuildPluginKey}
	if ctx.Language() == scaffold.Kotlin {
		keys = append(keys, KotlinBuildPluginsKey)
	}
	return keys
}

func (g *Gradle) Contribute(
	ctx   *scaffold.ResolutionContext,
	build *scaffold.DescriptorBuilder,
) error {
	build.AddRepository(mavenCentral.Name, mavenCentral.URL)
	for _, plugin := range g.extraPlugins(ctx) {
		build.AddPlugin(plugin)
	}
	return nil
}

func (g *Gradle) Artifacts(ctx *scaffold.PlanContext) ([]scaffold.Artifact, error) {
	springBoot := IsSpringBoot(ctx.ResolutionContext)
	tc := ctx.TemplateContext(map[string]any{
		"kotlinDsl":           ctx.BuildTool() == scaffold.GradleKotlin,
		"dependencies":        gradleDependencies(ctx.Descriptor, ctx.Language()),
		"micronaut":           micronautSettings(ctx.Descriptor),
		"sourceCompatibility": sourceCompatibility(ctx.Descriptor),
		"properties":          ctx.Descriptor.Properties(),
	})

	artifacts := g.wrapper()

	buildTemplate := "gradle/build"
	if springBoot {
		buildTemplate = "gradle/spring-boot-build"
	}
	artifacts = append(artifacts,
		scaffold.TextArtifact("build", ctx.BuildTool().BuildFileName(), buildTemplate, tc))

	gitignore := "gitignore"
	if springBoot {
		gitignore = "gradle/spring-boot-gitignore"
	}
	artifacts = append(artifacts,
		scaffold.TextArtifact("gitignore", ".gitignore", gitignore, tc))

	if !springBoot {
		artifacts = append(artifacts,
			scaffold.TextArtifact("projectProperties", "gradle.properties", "gradle/gradle.properties", tc))
	}

	artifacts = append(artifacts,
		scaffold.TextArtifact("gradleSettings", ctx.BuildTool().SettingsFileName(), "gradle/settings", tc))

	if springBoot {
		artifacts = append(artifacts,
			scaffold.TextArtifact("help", "HELP.md", "spring-boot/help", tc))
	}
	return artifacts, nil
}

func (g *Gradle) wrapper() []scaffold.Artifact {
	return []scaffold.Artifact{
		scaffold.BinaryArtifact("gradleWrapperJar", WrapperJar, WrapperJar),
		scaffold.CopyArtifact("gradleWrapperProperties", WrapperProperties, WrapperProperties, false),
		scaffold.CopyArtifact("gradleWrapper", "gradlew", "gradle/gradlew", true),
		scaffold.CopyArtifact("gradleWrapperBat", "gradlew.bat", "gradle/gradlew.bat", false),
	}
}

func (g *Gradle) extraPlugins(ctx *scaffold.ResolutionContext) []scaffold.PluginRef {
	if IsSpringBoot(ctx) {
		var id string
		switch ctx.Language() {
		case scaffold.Groovy:
			id = "groovy"
		case scaffold.Java:
			id = "java"
		default:
			return nil
		}
		return []scaffold.PluginRef{{
			ID: id,
			Extension: map[string]any{
				"sourceCompatibility": strconv.Itoa(int(ctx.TargetJdk())),
			},
		}}
	}
	if ctx.Language() == scaffold.Groovy || ctx.TestFramework() == scaffold.Spock {
		return []scaffold.PluginRef{groovyPlugin}
	}
	return nil
}

func gradleDependencies(
	descriptor *scaffold.BuildDescriptor,
	language   scaffold.Language,
) []gradleDependency {
	deps := descriptor.Dependencies()
	out  := make([]gradleDependency, len(deps))
	for i, dep := range deps {
		out[i] = gradleDependency{configuration(dep.Scope, language), dep.Coordinate}
	}
	return out
}

func configuration(scope scaffold.Scope, language scaffold.Language) string {
	switch scope {
	case scaffold.Runtime:
		return "runtimeOnly"
	case scaffold.Test:
		return "testImplementation"
	case scaffold.AnnotationProcessor:
		if language == scaffold.Kotlin {
			return "ksp"
		}
		return "annotationProcessor"
	}
	return "implementation"
}

func micronautSettings(descriptor *scaffold.BuildDescriptor) *micronautBlock {
	plugin, ok := descriptor.Plugin(MicronautApplicationPlugin)
	if !ok {
		return nil
	}
	block := &micronautBlock{}
	block.Runtime, _ = descriptor.ManagedProperty(RuntimeProperty)
	if runtime, ok := plugin.Extension["runtime"].(string); ok && block.Runtime == "" {
		block.Runtime = runtime
	}
	block.TestRuntime, _ = plugin.Extension["testRuntime"].(string)
	block.Annotations, _ = plugin.Extension["annotations"].(string)
	return block
}

func sourceCompatibility(descriptor *scaffold.BuildDescriptor) string {
	for _, id := range []string{"java", "groovy"} {
		if plugin, ok := descriptor.Plugin(id); ok {
			if version, ok := plugin.Extension["sourceCompatibility"].(string); ok {
				return version
			}
		}
	}
	return ""
}
