package scaffold

import (
	"container/list"

	"github.com/go-logr/logr"
)

// Resolver computes the closed, conflict-free and ordered
// feature set to apply for a request.
type Resolver struct {
	registry *Registry
	logger   logr.Logger
}

// NewResolver creates a Resolver over registry, sealing it.
func NewResolver(
	registry *Registry,
	opts     ...Option,
) *Resolver {
	if registry == nil {
		panic("registry cannot be nil")
	}
	registry.Seal()
	s := newSettings(opts)
	return &Resolver{registry, s.logger.WithName("resolver")}
}

// Resolve expands requested into the features to apply.
// Requested features come first in requested order followed by
// required, implied and default features in discovery order.
// Resolution is all-or-nothing: any error discards the run.
func (r *Resolver) Resolve(
	requested []Key,
	options   Options,
) (*ResolutionContext, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	ctx   := newResolutionContext(options, requested)
	queue := list.New()

	for _, key := range requested {
		feature, err := r.registry.Lookup(key)
		if err != nil {
			return nil, err
		}
		if ctx.add(feature) {
			r.logger.V(1).Info("resolved", "feature", key, "reason", "requested")
			queue.PushBack(feature)
		}
	}

	// growth is monotonic so each productive pass adds at least one
	// registered feature
	limit := r.registry.Len()
	for pass := 0; ; pass++ {
		if err := r.closeRequires(ctx, queue); err != nil {
			return nil, err
		}
		if pass > limit {
			return nil, &ResolutionCycleError{Iterations: pass}
		}
		added, err := r.imply(ctx, queue)
		if err != nil {
			return nil, err
		}
		if added == 0 {
			break
		}
	}

	if err := checkExclusions(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// closeRequires walks requires edges level-order from queue.
func (r *Resolver) closeRequires(
	ctx   *ResolutionContext,
	queue *list.List,
) error {
	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		feature := front.Value.(Feature)
		dependent, ok := feature.(Dependent)
		if !ok {
			continue
		}
		for _, key := range dependent.Requires() {
			required, err := r.registry.Lookup(key)
			if err != nil {
				return &MissingDependencyError{Feature: feature.Key(), Missing: key}
			}
			if ctx.add(required) {
				r.logger.V(1).Info("resolved", "feature", key, "reason", "required", "by", feature.Key())
				queue.PushBack(required)
			}
		}
	}
	return nil
}

// imply evaluates implied and default features once against
// the current resolution and queues any new ones.
func (r *Resolver) imply(
	ctx   *ResolutionContext,
	queue *list.List,
) (added int, err error) {
	for _, feature := range ctx.Features() {
		implying, ok := feature.(Implying)
		if !ok {
			continue
		}
		for _, key := range implying.Implies(ctx) {
			if ctx.Has(key) {
				continue
			}
			implied, err := r.registry.Lookup(key)
			if err != nil {
				return added, &MissingDependencyError{Feature: feature.Key(), Missing: key}
			}
			ctx.add(implied)
			r.logger.V(1).Info("resolved", "feature", key, "reason", "implied", "by", feature.Key())
			queue.PushBack(implied)
			added++
		}
	}
	for _, feature := range r.registry.Features() {
		if ctx.Has(feature.Key()) {
			continue
		}
		if defaulted, ok := feature.(Defaulted); ok && defaulted.Default(ctx) {
			ctx.add(feature)
			r.logger.V(1).Info("resolved", "feature", feature.Key(), "reason", "default")
			queue.PushBack(feature)
			added++
		}
	}
	return added, nil
}

func checkExclusions(ctx *ResolutionContext) error {
	for _, feature := range ctx.features {
		if exclusive, ok := feature.(Exclusive); ok {
			for _, key := range exclusive.Excludes() {
				if key != feature.Key() && ctx.Has(key) {
					return &ConflictError{Feature: feature.Key(), Excludes: key}
				}
			}
		}
	}
	return nil
}
