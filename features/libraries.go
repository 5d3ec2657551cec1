package features

import "github.com/scaffoldkit/scaffold"

const jacksonDatabind = "com.fasterxml.jackson.core:jackson-databind"

// SerdeJackson adds jackson based serialization.
func SerdeJackson() *scaffold.Definition {
	return &scaffold.Definition{
		Name: SerdeJacksonKey,
		Dependencies: []scaffold.DependencyRef{
			{Coordinate: "io.micronaut.serde:micronaut-serde-jackson", Scope: scaffold.Compile},
			{Coordinate: jacksonDatabind, Scope: scaffold.Compile},
			{Coordinate: "io.micronaut.serde:micronaut-serde-processor", Scope: scaffold.AnnotationProcessor},
		},
	}
}

// JacksonXml adds xml support on top of jackson.
func JacksonXml() *scaffold.Definition {
	return &scaffold.Definition{
		Name: JacksonXmlKey,
		Dependencies: []scaffold.DependencyRef{
			{Coordinate: "com.fasterxml.jackson.dataformat:jackson-dataformat-xml", Scope: scaffold.Compile},
			{Coordinate: jacksonDatabind, Scope: scaffold.Compile},
		},
	}
}

// JUnit is the default test framework.
func JUnit() *scaffold.Definition {
	return &scaffold.Definition{
		Name:      JUnitKey,
		Conflicts: []scaffold.Key{SpockKey, KotestKey},
		DefaultWhen: func(ctx *scaffold.ResolutionContext) bool {
			return ctx.TestFramework() == scaffold.JUnit
		},
		Apply: func(ctx *scaffold.ResolutionContext, build *scaffold.DescriptorBuilder) error {
			build.AddDependency("org.junit.jupiter:junit-jupiter-api", scaffold.Test).
				AddDependency("org.junit.jupiter:junit-jupiter-engine", scaffold.Test)
			if !IsSpringBoot(ctx) {
				build.AddDependency("io.micronaut.test:micronaut-test-junit5", scaffold.Test)
			}
			return nil
		},
	}
}

// Spock selects spock tests.
func Spock() *scaffold.Definition {
	return &scaffold.Definition{
		Name:      SpockKey,
		Conflicts: []scaffold.Key{JUnitKey, KotestKey},
		DefaultWhen: func(ctx *scaffold.ResolutionContext) bool {
			return ctx.TestFramework() == scaffold.Spock
		},
		Dependencies: []scaffold.DependencyRef{
			{Coordinate: "org.spockframework:spock-core", Scope: scaffold.Test},
		},
	}
}

// Kotest selects kotest tests.
func Kotest() *scaffold.Definition {
	return &scaffold.Definition{
		Name:      KotestKey,
		Conflicts: []scaffold.Key{JUnitKey, SpockKey},
		DefaultWhen: func(ctx *scaffold.ResolutionContext) bool {
			return ctx.TestFramework() == scaffold.Kotest
		},
		Dependencies: []scaffold.DependencyRef{
			{Coordinate: "io.kotest:kotest-runner-junit5-jvm", Scope: scaffold.Test},
		},
	}
}
