package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

type (
	// Provider defines the api to allow configuration
	// sources to expose their configuration information.
	Provider interface {
		Unmarshal(path string, flat bool, output any) error
	}

	// provider of configurations populated by the koanf library.
	// https://github.com/knadh/koanf
	provider struct {
		k *koanf.Koanf
	}
)

// EnvPrefix marks environment variables read by Koanf.
// SCAFFOLD__scaffold__buildTool=maven sets scaffold.buildTool.
const EnvPrefix = "SCAFFOLD__"

func (p *provider) Unmarshal(path string, flat bool, output any) error {
	return p.k.UnmarshalWithConf(path, output,
		koanf.UnmarshalConf{Tag: "path", FlatPaths: flat})
}

// P returns a Provider using the Koanf instance.
func P(k *koanf.Koanf) Provider {
	if k == nil {
		panic("k cannot be nil")
	}
	return &provider{k}
}

// Loading configures how Koanf layers its sources.
type Loading struct {
	merge func(src, dest map[string]any) error
}

// Strict fails Koanf when an environment variable overrides a file
// value of a different type, e.g. a string over a number or a table.
func Strict(l *Loading) {
	l.merge = MergeStrict
}

// Koanf loads the json file at path, when given, and overlays
// EnvPrefix environment variables.
func Koanf(
	path   string,
	config ...func(*Loading),
) (*koanf.Koanf, error) {
	loading := Loading{merge: Merge}
	for _, configure := range config {
		if configure != nil {
			configure(&loading)
		}
	}
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, err
		}
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", ".")
	}), nil, koanf.WithMergeFunc(loading.merge))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return k, nil
}

// Merge overlays src on dest, turning indexed keys into lists.
func Merge(src, dest map[string]any) error {
	ConvertSlices(src)
	maps.Merge(src, dest)
	return nil
}

// MergeStrict is Merge refusing to change the type of a key.
func MergeStrict(src, dest map[string]any) error {
	ConvertSlices(src)
	return maps.MergeStrict(src, dest)
}

// ConvertSlices replaces, in place, every nested map keyed only by
// indices with a list. It reports the list m itself converts to.
// SCAFFOLD__scaffold__features__0__name addresses features[0].name.
func ConvertSlices(m map[string]any) (any, bool) {
	var (
		invalid bool
		slice   []any
	)
	for k, v := range m {
		if c, ok := v.(map[string]any); ok {
			if cs, ok := ConvertSlices(c); ok {
				v, m[k] = cs, cs
			}
		}
		if !invalid {
			if i, err := strconv.Atoi(k); err == nil {
				if slice == nil {
					slice = make([]any, len(m))
				}
				if i >= len(slice) {
					ns := make([]any, i+1)
					copy(ns, slice)
					slice = ns
				}
				slice[i] = v
			} else if slice != nil {
				invalid = true
			}
		}
	}
	if slice != nil && !invalid {
		return slice, true
	}
	return nil, false
}
