// Package catalog resolves dependency versions from a Gradle style
// version catalog (libs.versions.toml).
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/scaffoldkit/scaffold"
)

type (
	// Catalog maps library coordinates and plugin ids to versions.
	// A Catalog is read-only once built.
	Catalog struct {
		versions map[string]string
	}

	document struct {
		Versions  map[string]string  `toml:"versions"`
		Libraries map[string]library `toml:"libraries"`
		Plugins   map[string]plugin  `toml:"plugins"`
	}

	library struct {
		Module  string `toml:"module"`
		Group   string `toml:"group"`
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	}

	plugin struct {
		ID      string `toml:"id"`
		Version any    `toml:"version"`
	}
)

var ErrMalformedCatalog = errors.New("malformed catalog")

// New creates a Catalog from explicit coordinate versions.
func New(versions map[string]string) *Catalog {
	c := &Catalog{versions: make(map[string]string, len(versions))}
	for coordinate, version := range versions {
		c.versions[coordinate] = version
	}
	return c
}

// Parse reads a version catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return doc.catalog()
}

// Load reads the version catalog at name in fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile reads a version catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return doc.catalog()
}

// ResolveVersion returns the version of a library coordinate
// (group:artifact) or plugin id.
func (c *Catalog) ResolveVersion(coordinate string) (string, error) {
	if version, ok := c.versions[coordinate]; ok {
		return version, nil
	}
	return "", &scaffold.UnresolvedCoordinateError{Coordinate: coordinate}
}

// Coordinates lists every known coordinate, sorted.
func (c *Catalog) Coordinates() []string {
	coordinates := make([]string, 0, len(c.versions))
	for coordinate := range c.versions {
		coordinates = append(coordinates, coordinate)
	}
	sort.Strings(coordinates)
	return coordinates
}

func (d *document) catalog() (*Catalog, error) {
	c := &Catalog{versions: make(map[string]string)}
	var problems []string
	for _, alias := range sortedAliases(d.Libraries) {
		lib := d.Libraries[alias]
		coordinate := lib.Module
		if coordinate == "" && lib.Group != "" && lib.Name != "" {
			coordinate = lib.Group + ":" + lib.Name
		}
		if coordinate == "" {
			problems = append(problems, fmt.Sprintf("library %q has no module", alias))
			continue
		}
		version, err := d.version(lib.Version)
		if err != nil {
			problems = append(problems, fmt.Sprintf("library %q: %v", alias, err))
			continue
		}
		c.versions[coordinate] = version
	}
	for _, alias := range sortedAliases(d.Plugins) {
		p := d.Plugins[alias]
		if p.ID == "" {
			problems = append(problems, fmt.Sprintf("plugin %q has no id", alias))
			continue
		}
		version, err := d.version(p.Version)
		if err != nil {
			problems = append(problems, fmt.Sprintf("plugin %q: %v", alias, err))
			continue
		}
		c.versions[p.ID] = version
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedCatalog, strings.Join(problems, "; "))
	}
	return c, nil
}

// version accepts a literal, a version.ref or a rich version table.
func (d *document) version(spec any) (string, error) {
	switch v := spec.(type) {
	case string:
		if v == "" {
			return "", errors.New("empty version")
		}
		return v, nil
	case map[string]any:
		if ref, ok := v["ref"].(string); ok {
			if version, ok := d.Versions[ref]; ok {
				return version, nil
			}
			return "", fmt.Errorf("unknown version ref %q", ref)
		}
		for _, key := range []string{"strictly", "require", "prefer"} {
			if version, ok := v[key].(string); ok && version != "" {
				return version, nil
			}
		}
		return "", errors.New("version table has no usable entry")
	case nil:
		return "", errors.New("missing version")
	}
	return "", fmt.Errorf("unsupported version %v", spec)
}

func sortedAliases[V any](m map[string]V) []string {
	aliases := make([]string, 0, len(m))
	for alias := range m {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
