package scaffold

type (
	// ResolutionContext is the working state of one resolution run.
	// Insertion order of resolved features is the application order.
	ResolutionContext struct {
		options   Options
		requested []Key
		features  []Feature
		index     map[Key]int
	}

	// PlanContext is handed to Producing features while planning.
	PlanContext struct {
		*ResolutionContext
		Descriptor *BuildDescriptor
	}
)

func newResolutionContext(
	options   Options,
	requested []Key,
) *ResolutionContext {
	return &ResolutionContext{
		options:   options,
		requested: append([]Key(nil), requested...),
		index:     make(map[Key]int),
	}
}

func (c *ResolutionContext) Options() Options {
	return c.options
}

func (c *ResolutionContext) Project() Project {
	return c.options.Project
}

func (c *ResolutionContext) ApplicationType() ApplicationType {
	return c.options.ApplicationType
}

func (c *ResolutionContext) BuildTool() BuildTool {
	return c.options.BuildTool
}

func (c *ResolutionContext) Language() Language {
	return c.options.Language
}

func (c *ResolutionContext) TestFramework() TestFramework {
	return c.options.TestFramework
}

func (c *ResolutionContext) TargetJdk() JdkVersion {
	return c.options.TargetJdk
}

// Has reports whether key has been resolved so far.
func (c *ResolutionContext) Has(key Key) bool {
	_, ok := c.index[key]
	return ok
}

// Requested returns the keys as supplied by the caller.
func (c *ResolutionContext) Requested() []Key {
	return append([]Key(nil), c.requested...)
}

// Resolved returns the keys in application order.
func (c *ResolutionContext) Resolved() []Key {
	keys := make([]Key, len(c.features))
	for i, f := range c.features {
		keys[i] = f.Key()
	}
	return keys
}

// Features returns the features in application order.
func (c *ResolutionContext) Features() []Feature {
	return append([]Feature(nil), c.features...)
}

func (c *ResolutionContext) Len() int {
	return len(c.features)
}

// add appends the feature unless already resolved.
func (c *ResolutionContext) add(feature Feature) bool {
	key := feature.Key()
	if _, ok := c.index[key]; ok {
		return false
	}
	c.index[key] = len(c.features)
	c.features = append(c.features, feature)
	return true
}
