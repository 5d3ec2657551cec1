package scaffold

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Planner asks each resolved feature, in application order,
// for the artifacts it contributes.
type Planner struct {
	logger logr.Logger
}

func NewPlanner(opts ...Option) *Planner {
	s := newSettings(opts)
	return &Planner{s.logger.WithName("planner")}
}

// Plan builds the ArtifactPlan for a resolution and its descriptor.
// A feature choosing between alternative artifacts for a path must
// contribute only one of them.
func (p *Planner) Plan(
	ctx        *ResolutionContext,
	descriptor *BuildDescriptor,
) (*ArtifactPlan, error) {
	if ctx == nil {
		panic("ctx cannot be nil")
	}
	if descriptor == nil {
		panic("descriptor cannot be nil")
	}
	plan := NewArtifactPlan()
	pc   := &PlanContext{ctx, descriptor}
	for _, feature := range ctx.features {
		producing, ok := feature.(Producing)
		if !ok {
			continue
		}
		artifacts, err := producing.Artifacts(pc)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", feature.Key(), err)
		}
		for _, artifact := range artifacts {
			artifact.Feature = feature.Key()
			if err := plan.Add(artifact); err != nil {
				p.logger.Error(err, "planning aborted", "feature", feature.Key())
				return nil, err
			}
			p.logger.V(1).Info("planned",
				"feature", feature.Key(),
				"id", artifact.ID,
				"path", artifact.Path,
				"kind", artifact.Kind)
		}
	}
	return plan, nil
}

// TemplateContext returns a fresh context for a text artifact.
func (c *PlanContext) TemplateContext(values map[string]any) *TemplateContext {
	return &TemplateContext{
		Project:    c.Project(),
		Options:    c.Options(),
		Features:   c.Resolved(),
		Descriptor: c.Descriptor,
		Values:     values,
	}
}
