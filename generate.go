package scaffold

import (
	"context"

	"github.com/go-logr/logr"
)

type (
	// Option customizes generation components.
	Option func(*settings)

	settings struct {
		logger  logr.Logger
		managed []string
	}

	// Generator runs resolution, descriptor building and planning.
	// A Generator is safe for concurrent use; every run owns its
	// own context, descriptor and plan.
	Generator struct {
		resolver *Resolver
		planner  *Planner
		managed  []string
		logger   logr.Logger
	}

	// Generation is the outcome of one successful run.
	Generation struct {
		Context    *ResolutionContext
		Descriptor *BuildDescriptor
		Plan       *ArtifactPlan
	}
)

// WithLogger assigns the root logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithManagedProperties replaces the managed property policy.
func WithManagedProperties(keys ...string) Option {
	return func(s *settings) {
		s.managed = append([]string{}, keys...)
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:  logr.Discard(),
		managed: DefaultManagedProperties,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}


// Generator

// NewGenerator creates a Generator over registry, sealing it.
func NewGenerator(
	registry *Registry,
	opts     ...Option,
) *Generator {
	s := newSettings(opts)
	return &Generator{
		resolver: NewResolver(registry, opts...),
		planner:  NewPlanner(opts...),
		managed:  s.managed,
		logger:   s.logger.WithName("generator"),
	}
}

// Generate resolves requested, builds the descriptor and plans the
// artifacts.  Any error aborts the run before anything is written.
func (g *Generator) Generate(
	requested []Key,
	options   Options,
) (*Generation, error) {
	ctx, err := g.resolver.Resolve(requested, options)
	if err != nil {
		g.logger.Error(err, "resolution failed", "requested", requested)
		return nil, err
	}
	descriptor, err := g.Describe(ctx)
	if err != nil {
		g.logger.Error(err, "descriptor failed", "resolved", ctx.Resolved())
		return nil, err
	}
	plan, err := g.planner.Plan(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	g.logger.Info("generated",
		"resolved", ctx.Resolved(),
		"artifacts", plan.Len())
	return &Generation{ctx, descriptor, plan}, nil
}

// Describe applies every resolved feature to a new descriptor.
func (g *Generator) Describe(ctx *ResolutionContext) (*BuildDescriptor, error) {
	build := NewDescriptorBuilder(g.managed...)
	for _, feature := range ctx.features {
		if contributing, ok := feature.(Contributing); ok {
			build.applying(feature.Key())
			if err := contributing.Contribute(ctx, build); err != nil {
				build.failWith(err)
			}
		}
	}
	return build.Build()
}

// Write hands the whole plan to writer and logs the outcome.
func (g *Generator) Write(
	ctx        context.Context,
	generation *Generation,
	writer     ProjectWriter,
) (*Report, error) {
	if generation == nil {
		panic("generation cannot be nil")
	}
	if IsNil(writer) {
		panic("writer cannot be nil")
	}
	report, err := writer.Write(ctx, generation.Plan)
	if report != nil {
		for _, failed := range report.Failed() {
			g.logger.Error(failed.Err, "artifact not written", "path", failed.Path)
		}
		g.logger.Info("written",
			"succeeded", len(report.Succeeded()),
			"failed", len(report.Failed()))
	}
	return report, err
}
