package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/scaffoldkit/scaffold"
)

type (
	// Settings is the configuration consumed by a generation host.
	Settings struct {
		Options     scaffold.Options
		Managed     []string
		Definitions []*scaffold.Definition
	}

	// FeatureConfig declares a feature without code.
	FeatureConfig struct {
		Name         string             `path:"name"`
		Requires     []string           `path:"requires"`
		Excludes     []string           `path:"excludes"`
		Implies      []string           `path:"implies"`
		Plugins      []PluginConfig     `path:"plugins"`
		Dependencies []DependencyConfig `path:"dependencies"`
		Repositories []RepositoryConfig `path:"repositories"`
		Properties   map[string]string  `path:"properties"`
		Managed      map[string]string  `path:"managedProperties"`
	}

	PluginConfig struct {
		ID        string         `path:"id"`
		Versioned bool           `path:"versioned"`
		Extension map[string]any `path:"extension"`
	}

	DependencyConfig struct {
		Coordinate string `path:"coordinate"`
		Scope      string `path:"scope"`
	}

	RepositoryConfig struct {
		Name string `path:"name"`
		URL  string `path:"url"`
	}

	// extras holds the settings beyond scaffold.Options.
	extras struct {
		Managed  *[]string      `path:"managedPropertyKeys"`
		Features []FeatureConfig `path:"features"`
	}
)

// Load reads Settings under path.  Options start from
// scaffold.DefaultOptions and must validate; the managed property
// policy defaults to scaffold.DefaultManagedProperties.
func Load(p Provider, path string) (*Settings, error) {
	if p == nil {
		panic("p cannot be nil")
	}
	options := scaffold.DefaultOptions()
	if err := p.Unmarshal(path, false, &options); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	var ext extras
	if err := p.Unmarshal(path, false, &ext); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	managed := scaffold.DefaultManagedProperties
	if ext.Managed != nil {
		managed = *ext.Managed
	}
	definitions, err := Definitions(ext.Features)
	if err != nil {
		return nil, err
	}
	return &Settings{
		Options:     options,
		Managed:     append([]string{}, managed...),
		Definitions: definitions,
	}, nil
}

// Definitions turns declared features into registrable definitions.
func Definitions(features []FeatureConfig) ([]*scaffold.Definition, error) {
	var errs error
	definitions := make([]*scaffold.Definition, 0, len(features))
	for i, fc := range features {
		if fc.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("config: feature %d has no name", i))
			continue
		}
		d := &scaffold.Definition{
			Name:       scaffold.Key(fc.Name),
			DependsOn:  keys(fc.Requires),
			Conflicts:  keys(fc.Excludes),
			Properties: fc.Properties,
			Managed:    fc.Managed,
		}
		if implies := keys(fc.Implies); len(implies) > 0 {
			d.ImpliesWhen = func(*scaffold.ResolutionContext) []scaffold.Key {
				return implies
			}
		}
		for _, plugin := range fc.Plugins {
			d.Plugins = append(d.Plugins, scaffold.PluginRef{
				ID:        plugin.ID,
				Versioned: plugin.Versioned,
				Extension: plugin.Extension,
			})
		}
		for _, dep := range fc.Dependencies {
			scope := scaffold.Scope(dep.Scope)
			if scope == "" {
				scope = scaffold.Compile
			}
			d.Dependencies = append(d.Dependencies, scaffold.DependencyRef{
				Coordinate: dep.Coordinate,
				Scope:      scope,
			})
		}
		for _, repo := range fc.Repositories {
			d.Repositories = append(d.Repositories, scaffold.RepositoryRef{
				Name: repo.Name,
				URL:  repo.URL,
			})
		}
		definitions = append(definitions, d)
	}
	if errs != nil {
		return nil, errs
	}
	return definitions, nil
}

func keys(names []string) []scaffold.Key {
	if len(names) == 0 {
		return nil
	}
	out := make([]scaffold.Key, len(names))
	for i, name := range names {
		out[i] = scaffold.Key(name)
	}
	return out
}
