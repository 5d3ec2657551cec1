package scaffold

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Registry holds every known Feature by Key.
// Features are registered at startup and the Registry is sealed
// before the first resolution, after which it is read-only and
// safe to share between concurrent generation runs.
type Registry struct {
	lock     sync.RWMutex
	sealed   bool
	order    []Key
	features map[Key]Feature
}

// NewRegistry creates a Registry populated with features.
// All registration failures are reported together.
func NewRegistry(features ...Feature) (*Registry, error) {
	r := &Registry{features: make(map[Key]Feature, len(features))}
	var errs error
	for _, feature := range features {
		if err := r.Register(feature); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return r, errs
}

// Register adds feature to the registry.
func (r *Registry) Register(feature Feature) error {
	if IsNil(feature) {
		panic("feature cannot be nil")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.sealed {
		return ErrRegistrySealed
	}
	key := feature.Key()
	if _, ok := r.features[key]; ok {
		return &DuplicateFeatureError{Key: key}
	}
	if r.features == nil {
		r.features = make(map[Key]Feature)
	}
	r.features[key] = feature
	r.order = append(r.order, key)
	return nil
}

// Replace substitutes the active implementation of an already
// registered feature, keeping its registration position.
func (r *Registry) Replace(feature Feature) error {
	if IsNil(feature) {
		panic("feature cannot be nil")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.sealed {
		return ErrRegistrySealed
	}
	key := feature.Key()
	if _, ok := r.features[key]; !ok {
		return &UnknownFeatureError{Key: key}
	}
	r.features[key] = feature
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.lock.Lock()
	r.sealed = true
	r.lock.Unlock()
}

func (r *Registry) Sealed() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.sealed
}

// Lookup returns the feature registered for key.
func (r *Registry) Lookup(key Key) (Feature, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if feature, ok := r.features[key]; ok {
		return feature, nil
	}
	return nil, &UnknownFeatureError{Key: key}
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []Key {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]Key(nil), r.order...)
}

// Features returns the registered features in registration order.
func (r *Registry) Features() []Feature {
	r.lock.RLock()
	defer r.lock.RUnlock()
	features := make([]Feature, len(r.order))
	for i, key := range r.order {
		features[i] = r.features[key]
	}
	return features
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.order)
}
