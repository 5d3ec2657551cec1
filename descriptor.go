package scaffold

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
	"github.com/mitchellh/copystructure"
)

type (
	// Scope of a dependency in the generated build.
	Scope string

	// PluginRef is a build plugin with optional extension data
	// rendered into the plugin's configuration block.
	PluginRef struct {
		ID        string
		Versioned bool
		Extension map[string]any
	}

	// DependencyRef identifies a dependency by coordinate and scope.
	// The version is supplied by a DependencyCatalog on rendering.
	DependencyRef struct {
		Coordinate string
		Scope      Scope
	}

	// RepositoryRef is an artifact repository.
	RepositoryRef struct {
		Name string
		URL  string
	}

	// Property is a key/value build property.
	Property struct {
		Key   string
		Value string
	}

	// DescriptorBuilder accumulates contributions in feature
	// application order.  Errors are collected and reported by Build.
	DescriptorBuilder struct {
		feature   Key
		managed   map[string]struct{}
		plugins   []PluginRef
		pluginIdx map[string]int
		deps      []DependencyRef
		depIdx    map[DependencyRef]struct{}
		repos     []RepositoryRef
		repoIdx   map[string]struct{}
		props     []Property
		propIdx   map[string]int
		dsl       []Property
		dslIdx    map[string]int
		errs      error
	}

	// BuildDescriptor is the immutable result of a DescriptorBuilder.
	BuildDescriptor struct {
		plugins []PluginRef
		deps    []DependencyRef
		repos   []RepositoryRef
		props   []Property
		managed []Property
	}
)

const (
	Compile             Scope = "compile"
	Runtime             Scope = "runtime"
	Test                Scope = "test"
	AnnotationProcessor Scope = "annotationProcessor"
)

// DefaultManagedProperties lists keys expressed through the build
// plugin DSL rather than as generic properties.
var DefaultManagedProperties = []string{"micronautRuntime"}

const coordinatePattern = `^[A-Za-z0-9_.\-]+:[A-Za-z0-9_.\-]+$`


func (s Scope) Valid() bool {
	switch s {
	case Compile, Runtime, Test, AnnotationProcessor:
		return true
	}
	return false
}

// Group returns the group part of the coordinate.
func (d DependencyRef) Group() string {
	group, _ := splitCoordinate(d.Coordinate)
	return group
}

// Artifact returns the artifact part of the coordinate.
func (d DependencyRef) Artifact() string {
	_, artifact := splitCoordinate(d.Coordinate)
	return artifact
}


// DescriptorBuilder

// NewDescriptorBuilder creates a builder enforcing the managed
// property policy.
func NewDescriptorBuilder(managed ...string) *DescriptorBuilder {
	b := &DescriptorBuilder{
		managed:   make(map[string]struct{}, len(managed)),
		pluginIdx: make(map[string]int),
		depIdx:    make(map[DependencyRef]struct{}),
		repoIdx:   make(map[string]struct{}),
		propIdx:   make(map[string]int),
		dslIdx:    make(map[string]int),
	}
	for _, key := range managed {
		b.managed[key] = struct{}{}
	}
	return b
}

// AddPlugin adds a plugin once per id.  Extension data of a
// repeated id is merged over the existing extension.
func (b *DescriptorBuilder) AddPlugin(plugin PluginRef) *DescriptorBuilder {
	if plugin.ID == "" {
		return b.fail("plugin id is required")
	}
	if i, ok := b.pluginIdx[plugin.ID]; ok {
		existing := &b.plugins[i]
		existing.Versioned = existing.Versioned || plugin.Versioned
		if len(plugin.Extension) > 0 {
			ext, err := cloneExtension(plugin.Extension)
			if err != nil {
				return b.fail(fmt.Sprintf("plugin %q extension: %v", plugin.ID, err))
			}
			if existing.Extension == nil {
				existing.Extension = make(map[string]any, len(ext))
			}
			if err := mergo.Merge(&existing.Extension, ext, mergo.WithOverride); err != nil {
				return b.fail(fmt.Sprintf("plugin %q extension: %v", plugin.ID, err))
			}
		}
		return b
	}
	ext, err := cloneExtension(plugin.Extension)
	if err != nil {
		return b.fail(fmt.Sprintf("plugin %q extension: %v", plugin.ID, err))
	}
	plugin.Extension = ext
	b.pluginIdx[plugin.ID] = len(b.plugins)
	b.plugins = append(b.plugins, plugin)
	return b
}

// AddDependency adds a dependency once per coordinate and scope.
func (b *DescriptorBuilder) AddDependency(
	coordinate string,
	scope      Scope,
) *DescriptorBuilder {
	if !govalidator.Matches(coordinate, coordinatePattern) {
		return b.fail(fmt.Sprintf("malformed coordinate %q", coordinate))
	}
	if !scope.Valid() {
		return b.fail(fmt.Sprintf("unknown scope %q for %q", scope, coordinate))
	}
	dep := DependencyRef{coordinate, scope}
	if _, ok := b.depIdx[dep]; !ok {
		b.depIdx[dep] = struct{}{}
		b.deps = append(b.deps, dep)
	}
	return b
}

// AddRepository adds a repository once per url.
func (b *DescriptorBuilder) AddRepository(
	name string,
	url  string,
) *DescriptorBuilder {
	if name == "" {
		return b.fail(fmt.Sprintf("repository %q has no name", url))
	}
	if !govalidator.IsURL(url) {
		return b.fail(fmt.Sprintf("repository %q has invalid url %q", name, url))
	}
	if _, ok := b.repoIdx[url]; !ok {
		b.repoIdx[url] = struct{}{}
		b.repos = append(b.repos, RepositoryRef{name, url})
	}
	return b
}

// SetProperty sets a generic property, the last write wins.
func (b *DescriptorBuilder) SetProperty(key, value string) *DescriptorBuilder {
	if key == "" {
		return b.fail("property key is required")
	}
	b.props = setProperty(b.props, b.propIdx, key, value)
	return b
}

// SetManagedProperty sets a managed property through the plugin
// DSL channel.  The key never appears among generic properties.
func (b *DescriptorBuilder) SetManagedProperty(key, value string) *DescriptorBuilder {
	if _, ok := b.managed[key]; !ok {
		return b.fail(fmt.Sprintf("property %q is not managed", key))
	}
	b.dsl = setProperty(b.dsl, b.dslIdx, key, value)
	return b
}

// Build returns the immutable descriptor or every collected error.
func (b *DescriptorBuilder) Build() (*BuildDescriptor, error) {
	if b.errs != nil {
		return nil, b.errs
	}
	d := &BuildDescriptor{
		plugins: make([]PluginRef, len(b.plugins)),
		deps:    append([]DependencyRef(nil), b.deps...),
		repos:   append([]RepositoryRef(nil), b.repos...),
		managed: append([]Property(nil), b.dsl...),
	}
	for i, plugin := range b.plugins {
		ext, err := cloneExtension(plugin.Extension)
		if err != nil {
			return nil, &DescriptorError{Feature: b.feature, Reason: fmt.Sprintf("plugin %q extension: %v", plugin.ID, err)}
		}
		plugin.Extension = ext
		d.plugins[i] = plugin
	}
	for _, prop := range b.props {
		if _, ok := b.managed[prop.Key]; !ok {
			d.props = append(d.props, prop)
		} else if _, set := b.dslIdx[prop.Key]; !set {
			// only written generically, carried by the DSL instead
			d.managed = append(d.managed, prop)
		}
	}
	return d, nil
}

// applying attributes subsequent errors to feature.
func (b *DescriptorBuilder) applying(feature Key) {
	b.feature = feature
}

func (b *DescriptorBuilder) failWith(err error) {
	b.errs = multierror.Append(b.errs, err)
}

func (b *DescriptorBuilder) fail(reason string) *DescriptorBuilder {
	b.failWith(&DescriptorError{Feature: b.feature, Reason: reason})
	return b
}

// BuildDescriptor

func (d *BuildDescriptor) Plugins() []PluginRef {
	plugins := make([]PluginRef, len(d.plugins))
	for i, plugin := range d.plugins {
		plugin.Extension = mustCloneExtension(plugin.Extension)
		plugins[i] = plugin
	}
	return plugins
}

func (d *BuildDescriptor) Plugin(id string) (PluginRef, bool) {
	for _, plugin := range d.plugins {
		if plugin.ID == id {
			plugin.Extension = mustCloneExtension(plugin.Extension)
			return plugin, true
		}
	}
	return PluginRef{}, false
}

func (d *BuildDescriptor) Dependencies() []DependencyRef {
	return append([]DependencyRef(nil), d.deps...)
}

// DependenciesIn returns the dependencies of a single scope.
func (d *BuildDescriptor) DependenciesIn(scope Scope) []DependencyRef {
	var deps []DependencyRef
	for _, dep := range d.deps {
		if dep.Scope == scope {
			deps = append(deps, dep)
		}
	}
	return deps
}

func (d *BuildDescriptor) HasDependency(coordinate string, scope Scope) bool {
	for _, dep := range d.deps {
		if dep.Coordinate == coordinate && dep.Scope == scope {
			return true
		}
	}
	return false
}

func (d *BuildDescriptor) Repositories() []RepositoryRef {
	return append([]RepositoryRef(nil), d.repos...)
}

// Properties returns generic properties, managed keys excluded.
func (d *BuildDescriptor) Properties() []Property {
	return append([]Property(nil), d.props...)
}

func (d *BuildDescriptor) Property(key string) (string, bool) {
	return lookupProperty(d.props, key)
}

// ManagedProperties returns properties carried by the plugin DSL.
func (d *BuildDescriptor) ManagedProperties() []Property {
	return append([]Property(nil), d.managed...)
}

func (d *BuildDescriptor) ManagedProperty(key string) (string, bool) {
	return lookupProperty(d.managed, key)
}

// Coordinates returns every catalog coordinate the descriptor
// needs a version for: dependencies then versioned plugins.
func (d *BuildDescriptor) Coordinates() []string {
	seen := make(map[string]struct{}, len(d.deps)+len(d.plugins))
	var coordinates []string
	add := func(c string) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			coordinates = append(coordinates, c)
		}
	}
	for _, dep := range d.deps {
		add(dep.Coordinate)
	}
	for _, plugin := range d.plugins {
		if plugin.Versioned {
			add(plugin.ID)
		}
	}
	return coordinates
}

func setProperty(
	props []Property,
	index map[string]int,
	key   string,
	value string,
) []Property {
	if i, ok := index[key]; ok {
		props[i].Value = value
		return props
	}
	index[key] = len(props)
	return append(props, Property{key, value})
}

func lookupProperty(props []Property, key string) (string, bool) {
	for _, prop := range props {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// cloneExtension deep copies ext, nested maps and slices included.
func cloneExtension(ext map[string]any) (map[string]any, error) {
	if ext == nil {
		return nil, nil
	}
	clone, err := copystructure.Copy(ext)
	if err != nil {
		return nil, err
	}
	return clone.(map[string]any), nil
}

// mustCloneExtension copies an extension already cloned once by Build.
func mustCloneExtension(ext map[string]any) map[string]any {
	clone, err := cloneExtension(ext)
	if err != nil {
		panic(err)
	}
	return clone
}

func splitCoordinate(coordinate string) (group, artifact string) {
	group, artifact, _ = strings.Cut(coordinate, ":")
	return
}
