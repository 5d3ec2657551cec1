package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFeature       = errors.New("unknown feature")
	ErrDuplicateFeature     = errors.New("duplicate feature")
	ErrRegistrySealed       = errors.New("registry sealed")
	ErrMissingDependency    = errors.New("missing dependency")
	ErrConflict             = errors.New("feature conflict")
	ErrResolutionCycle      = errors.New("resolution did not converge")
	ErrDuplicateArtifact    = errors.New("duplicate artifact")
	ErrInvalidDescriptor    = errors.New("invalid descriptor")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateRender       = errors.New("template render failed")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrUnresolvedCoordinate = errors.New("unresolved coordinate")
	ErrWrite                = errors.New("write failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

type (
	// UnknownFeatureError reports a key absent from the Registry.
	UnknownFeatureError struct {
		Key Key
	}

	// DuplicateFeatureError reports a second registration of a key.
	DuplicateFeatureError struct {
		Key Key
	}

	// MissingDependencyError reports a required or implied feature
	// that the Registry cannot supply.
	MissingDependencyError struct {
		Feature Key
		Missing Key
	}

	// ConflictError names both ends of a violated excludes pair.
	ConflictError struct {
		Feature  Key
		Excludes Key
	}

	// ResolutionCycleError reports a resolution that kept growing
	// past the number of registered features.
	ResolutionCycleError struct {
		Iterations int
	}

	// DuplicateArtifactError is a defect in feature authoring: two
	// features claimed the same destination path or artifact id.
	DuplicateArtifactError struct {
		ID       string
		Path     string
		Existing string
	}

	// DescriptorError reports a contribution that cannot enter a
	// BuildDescriptor.
	DescriptorError struct {
		Feature Key
		Reason  string
	}

	// TemplateNotFoundError reports a template id unknown to the renderer.
	TemplateNotFoundError struct {
		TemplateID string
	}

	// TemplateRenderError reports a template that failed on its context.
	TemplateRenderError struct {
		TemplateID string
		Reason     error
	}

	// ResourceNotFoundError reports a missing binary or verbatim resource.
	ResourceNotFoundError struct {
		Path string
	}

	// UnresolvedCoordinateError reports a coordinate the catalog
	// has no version for.
	UnresolvedCoordinateError struct {
		Coordinate string
	}

	// WriteError reports the failure to materialize one artifact.
	WriteError struct {
		Path   string
		Reason error
	}

	// InvalidConfigurationError lists every rejected option.
	InvalidConfigurationError struct {
		Violations []string
	}
)


func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("%v %q", ErrUnknownFeature, e.Key)
}

func (e *UnknownFeatureError) Is(target error) bool {
	return target == ErrUnknownFeature
}

func (e *DuplicateFeatureError) Error() string {
	return fmt.Sprintf("%v %q", ErrDuplicateFeature, e.Key)
}

func (e *DuplicateFeatureError) Is(target error) bool {
	return target == ErrDuplicateFeature
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%v: feature %q requires %q", ErrMissingDependency, e.Feature, e.Missing)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %q excludes %q", ErrConflict, e.Feature, e.Excludes)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ResolutionCycleError) Error() string {
	return fmt.Sprintf("%v after %d iterations", ErrResolutionCycle, e.Iterations)
}

func (e *ResolutionCycleError) Is(target error) bool {
	return target == ErrResolutionCycle
}

func (e *DuplicateArtifactError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: path %q already produced by %q", ErrDuplicateArtifact, e.Path, e.Existing)
	}
	return fmt.Sprintf("%v: id %q already planned", ErrDuplicateArtifact, e.ID)
}

func (e *DuplicateArtifactError) Is(target error) bool {
	return target == ErrDuplicateArtifact
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("%v: feature %q: %s", ErrInvalidDescriptor, e.Feature, e.Reason)
}

func (e *DescriptorError) Is(target error) bool {
	return target == ErrInvalidDescriptor
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrTemplateNotFound, e.TemplateID)
}

func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrTemplateRender, e.TemplateID, e.Reason)
}

func (e *TemplateRenderError) Is(target error) bool {
	return target == ErrTemplateRender
}

func (e *TemplateRenderError) Unwrap() error {
	return e.Reason
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrResourceNotFound, e.Path)
}

func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

func (e *UnresolvedCoordinateError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnresolvedCoordinate, e.Coordinate)
}

func (e *UnresolvedCoordinateError) Is(target error) bool {
	return target == ErrUnresolvedCoordinate
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrWrite, e.Path, e.Reason)
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Reason
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidConfiguration, strings.Join(e.Violations, "; "))
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
