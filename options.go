package scaffold

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	play "github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type (
	// ApplicationType selects the kind of project generated.
	ApplicationType string

	// BuildTool selects the build system of the generated project.
	BuildTool string

	// Language selects the source language of the generated project.
	Language string

	// TestFramework selects the test framework of the generated project.
	TestFramework string

	// JdkVersion is the target runtime version.
	JdkVersion int

	// Project identifies the generated project.
	Project struct {
		Name    string `path:"name" validate:"required"`
		Package string `path:"package" validate:"required"`
	}

	// Options is the configuration surface consumed by generation.
	// Every field is a closed enumeration supplied by the host.
	Options struct {
		ApplicationType ApplicationType `path:"applicationType" validate:"required,oneof=default cli function grpc messaging"`
		BuildTool       BuildTool       `path:"buildTool" validate:"required,oneof=gradle gradle_kotlin maven"`
		Language        Language        `path:"sourceLanguage" validate:"required,oneof=java kotlin groovy"`
		TestFramework   TestFramework   `path:"testFramework" validate:"required,oneof=junit spock kotest"`
		TargetJdk       JdkVersion      `path:"targetRuntimeVersion" validate:"required,oneof=17 21 25"`
		Project         Project         `path:"project"`
	}
)

const (
	ApplicationDefault   ApplicationType = "default"
	ApplicationCli       ApplicationType = "cli"
	ApplicationFunction  ApplicationType = "function"
	ApplicationGrpc      ApplicationType = "grpc"
	ApplicationMessaging ApplicationType = "messaging"
)

const (
	Gradle       BuildTool = "gradle"
	GradleKotlin BuildTool = "gradle_kotlin"
	Maven        BuildTool = "maven"
)

const (
	Java   Language = "java"
	Kotlin Language = "kotlin"
	Groovy Language = "groovy"
)

const (
	JUnit  TestFramework = "junit"
	Spock  TestFramework = "spock"
	Kotest TestFramework = "kotest"
)

const (
	Jdk17 JdkVersion = 17
	Jdk21 JdkVersion = 21
	Jdk25 JdkVersion = 25
)


// BuildTool

func (b BuildTool) IsGradle() bool {
	return b == Gradle || b == GradleKotlin
}

func (b BuildTool) BuildFileName() string {
	switch b {
	case Gradle:
		return "build.gradle"
	case GradleKotlin:
		return "build.gradle.kts"
	case Maven:
		return "pom.xml"
	}
	return ""
}

func (b BuildTool) SettingsFileName() string {
	switch b {
	case Gradle:
		return "settings.gradle"
	case GradleKotlin:
		return "settings.gradle.kts"
	}
	return ""
}


// Options

// DefaultOptions returns the options used when the host supplies none.
func DefaultOptions() Options {
	return Options{
		ApplicationType: ApplicationDefault,
		BuildTool:       Gradle,
		Language:        Java,
		TestFramework:   JUnit,
		TargetJdk:       Jdk17,
		Project:         Project{Name: "demo", Package: "com.example"},
	}
}

// Validate fails fast with an InvalidConfigurationError naming
// every unrecognized value.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrors play.ValidationErrors
	if errors.As(err, &fieldErrors) {
		violations := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			violations[i] = fe.Translate(translator)
		}
		return &InvalidConfigurationError{Violations: violations}
	}
	return &InvalidConfigurationError{Violations: []string{err.Error()}}
}

var (
	validate   *play.Validate
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	validate = play.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, _, _ := strings.Cut(field.Tag.Get("path"), ","); name != "" {
			return name
		}
		return field.Name
	})
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
}
