package scaffold

type (
	// Key uniquely identifies a Feature in a Registry.
	Key string

	// Feature is an optional, named capability a generated project
	// may include.  Relations and contributions are expressed by
	// implementing the optional interfaces below.
	Feature interface {
		Key() Key
	}

	// Dependent features require other features to be resolved.
	Dependent interface {
		Requires() []Key
	}

	// Exclusive features cannot be resolved alongside others.
	Exclusive interface {
		Excludes() []Key
	}

	// Implying features add features conditioned on the
	// current resolution.
	Implying interface {
		Implies(ctx *ResolutionContext) []Key
	}

	// Defaulted features join a resolution unrequested when
	// the predicate holds.
	Defaulted interface {
		Default(ctx *ResolutionContext) bool
	}

	// Contributing features add plugins, dependencies, repositories
	// and properties to the build descriptor.
	Contributing interface {
		Contribute(ctx *ResolutionContext, build *DescriptorBuilder) error
	}

	// Producing features contribute output artifacts.
	Producing interface {
		Artifacts(ctx *PlanContext) ([]Artifact, error)
	}

	// Definition is a Feature expressed as a data record.
	// Static contributions are applied before Apply.
	Definition struct {
		Name         Key
		DependsOn    []Key
		Conflicts    []Key
		Plugins      []PluginRef
		Dependencies []DependencyRef
		Repositories []RepositoryRef
		Properties   map[string]string
		Managed      map[string]string
		ImpliesWhen  func(*ResolutionContext) []Key
		DefaultWhen  func(*ResolutionContext) bool
		Apply        func(*ResolutionContext, *DescriptorBuilder) error
		Produce      func(*PlanContext) ([]Artifact, error)
	}
)


// Definition

func (d *Definition) Key() Key {
	return d.Name
}

func (d *Definition) Requires() []Key {
	return d.DependsOn
}

func (d *Definition) Excludes() []Key {
	return d.Conflicts
}

func (d *Definition) Implies(ctx *ResolutionContext) []Key {
	if d.ImpliesWhen == nil {
		return nil
	}
	return d.ImpliesWhen(ctx)
}

func (d *Definition) Default(ctx *ResolutionContext) bool {
	return d.DefaultWhen != nil && d.DefaultWhen(ctx)
}

func (d *Definition) Contribute(
	ctx   *ResolutionContext,
	build *DescriptorBuilder,
) error {
	for _, plugin := range d.Plugins {
		build.AddPlugin(plugin)
	}
	for _, dep := range d.Dependencies {
		build.AddDependency(dep.Coordinate, dep.Scope)
	}
	for _, repo := range d.Repositories {
		build.AddRepository(repo.Name, repo.URL)
	}
	for _, key := range sortedKeys(d.Properties) {
		build.SetProperty(key, d.Properties[key])
	}
	for _, key := range sortedKeys(d.Managed) {
		build.SetManagedProperty(key, d.Managed[key])
	}
	if d.Apply != nil {
		return d.Apply(ctx, build)
	}
	return nil
}

func (d *Definition) Artifacts(ctx *PlanContext) ([]Artifact, error) {
	if d.Produce == nil {
		return nil, nil
	}
	return d.Produce(ctx)
}
