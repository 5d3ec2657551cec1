package writer

import (
	"context"
	"sort"
	"sync"

	"github.com/scaffoldkit/scaffold"
)

type (
	// File is an artifact materialized in memory.
	File struct {
		Data       []byte
		Kind       scaffold.ArtifactKind
		Executable bool
	}

	// Memory keeps materialized artifacts in memory, for previews
	// and tests.
	Memory struct {
		sources Sources
		lock    sync.RWMutex
		files   map[string]File
	}
)

func NewMemory(sources Sources) *Memory {
	return &Memory{sources: sources, files: make(map[string]File)}
}

func (m *Memory) Write(
	ctx  context.Context,
	plan *scaffold.ArtifactPlan,
) (*scaffold.Report, error) {
	artifacts := plan.Artifacts()
	errs      := make([]error, len(artifacts))
	for i, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			errs[i] = &scaffold.WriteError{Path: artifact.Path, Reason: err}
			continue
		}
		data, err := m.sources.Content(artifact)
		if err != nil {
			errs[i] = err
			continue
		}
		m.lock.Lock()
		m.files[artifact.Path] = File{data, artifact.Kind, artifact.Executable}
		m.lock.Unlock()
	}
	report := scaffold.NewReport(plan, errs)
	return report, report.Err()
}

func (m *Memory) File(path string) (File, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	f, ok := m.files[path]
	return f, ok
}

// Paths returns the written paths, sorted.
func (m *Memory) Paths() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
