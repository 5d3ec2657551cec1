package scaffold

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Rican7/conjson"
	"github.com/Rican7/conjson/transform"
)

type (
	// ArtifactKind distinguishes how an artifact is materialized.
	ArtifactKind uint8

	// Artifact is a single planned output file.
	Artifact struct {
		ID         string
		Path       string
		Kind       ArtifactKind
		Template   string
		Resource   string
		Executable bool
		Context    any
		Feature    Key
	}

	// ArtifactPlan is the ordered, path-unique list of artifacts
	// a generation run produces.
	ArtifactPlan struct {
		artifacts []Artifact
		byPath    map[string]int
		byID      map[string]int
	}

	// manifestEntry is the encoded form of an Artifact.
	manifestEntry struct {
		Id         string
		Path       string
		Kind       string
		Template   string `json:",omitempty"`
		Resource   string `json:",omitempty"`
		Executable bool
		Feature    Key
	}
)

const (
	Text ArtifactKind = iota
	Binary
	VerbatimCopy
)

var ErrInvalidArtifact = errors.New("invalid artifact")

var camelCase = []transform.Transformer{
	transform.OnlyForDirection(
		transform.Marshal,
		transform.CamelCaseKeys(false)),
}


func (k ArtifactKind) String() string {
	switch k {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case VerbatimCopy:
		return "copy"
	}
	return fmt.Sprintf("ArtifactKind(%d)", k)
}

// TextArtifact renders template with context.
func TextArtifact(
	id       string,
	dest     string,
	template string,
	context  any,
) Artifact {
	return Artifact{ID: id, Path: dest, Kind: Text, Template: template, Context: context}
}

// BinaryArtifact copies a binary resource.
func BinaryArtifact(id, dest, resource string) Artifact {
	return Artifact{ID: id, Path: dest, Kind: Binary, Resource: resource}
}

// CopyArtifact copies a text resource verbatim.
func CopyArtifact(
	id         string,
	dest       string,
	resource   string,
	executable bool,
) Artifact {
	return Artifact{ID: id, Path: dest, Kind: VerbatimCopy, Resource: resource, Executable: executable}
}


// ArtifactPlan

func NewArtifactPlan() *ArtifactPlan {
	return &ArtifactPlan{
		byPath: make(map[string]int),
		byID:   make(map[string]int),
	}
}

// Add appends artifact.  A repeated destination path or id is a
// DuplicateArtifactError, never an override.
func (p *ArtifactPlan) Add(artifact Artifact) error {
	dest, err := cleanPath(artifact.Path)
	if err != nil {
		return err
	}
	if artifact.ID == "" {
		return fmt.Errorf("%w: %q has no id", ErrInvalidArtifact, dest)
	}
	switch artifact.Kind {
	case Text:
		if artifact.Template == "" {
			return fmt.Errorf("%w: %q has no template", ErrInvalidArtifact, artifact.ID)
		}
	case Binary, VerbatimCopy:
		if artifact.Resource == "" {
			return fmt.Errorf("%w: %q has no resource", ErrInvalidArtifact, artifact.ID)
		}
	default:
		return fmt.Errorf("%w: %q has kind %v", ErrInvalidArtifact, artifact.ID, artifact.Kind)
	}
	if i, ok := p.byPath[dest]; ok {
		return &DuplicateArtifactError{ID: artifact.ID, Path: dest, Existing: p.artifacts[i].ID}
	}
	if _, ok := p.byID[artifact.ID]; ok {
		return &DuplicateArtifactError{ID: artifact.ID}
	}
	artifact.Path = dest
	p.byPath[dest] = len(p.artifacts)
	p.byID[artifact.ID] = len(p.artifacts)
	p.artifacts = append(p.artifacts, artifact)
	return nil
}

func (p *ArtifactPlan) Artifacts() []Artifact {
	return append([]Artifact(nil), p.artifacts...)
}

// Paths returns destination paths in plan order.
func (p *ArtifactPlan) Paths() []string {
	paths := make([]string, len(p.artifacts))
	for i, a := range p.artifacts {
		paths[i] = a.Path
	}
	return paths
}

func (p *ArtifactPlan) Lookup(dest string) (Artifact, bool) {
	if i, ok := p.byPath[path.Clean(dest)]; ok {
		return p.artifacts[i], true
	}
	return Artifact{}, false
}

func (p *ArtifactPlan) Len() int {
	return len(p.artifacts)
}

// MarshalJSON encodes the plan as a camelCase manifest.
// Template contexts are not encoded.
func (p *ArtifactPlan) MarshalJSON() ([]byte, error) {
	entries := make([]manifestEntry, len(p.artifacts))
	for i, a := range p.artifacts {
		entries[i] = manifestEntry{
			Id:         a.ID,
			Path:       a.Path,
			Kind:       a.Kind.String(),
			Template:   a.Template,
			Resource:   a.Resource,
			Executable: a.Executable,
			Feature:    a.Feature,
		}
	}
	return json.Marshal(conjson.NewMarshaler(entries, camelCase...))
}

func cleanPath(dest string) (string, error) {
	if strings.TrimSpace(dest) == "" {
		return "", fmt.Errorf("%w: empty destination path", ErrInvalidArtifact)
	}
	clean := path.Clean(strings.ReplaceAll(dest, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: path %q escapes the project root", ErrInvalidArtifact, dest)
	}
	return clean, nil
}
