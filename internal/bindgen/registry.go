// Package bindgen drives manifest discovery, model building, rendering and
// writing for the registered binding targets.
package bindgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saffronjam/plugify-bindgen/internal/common"
	"github.com/saffronjam/plugify-bindgen/internal/dlang"
	"github.com/saffronjam/plugify-bindgen/internal/golang"
	"github.com/saffronjam/plugify-bindgen/internal/tsdecl"
)

// Target renders a resolved model for one binding language.
type Target interface {
	Name() string
	ReservedWords() []string
	Generate(model *common.Model) (common.Files, error)
}

// Factory builds a target from the run configuration.
type Factory func(config *common.Config) Target

var (
	registry = make(map[string]Factory)
	aliases  = map[string]string{
		"d":  "dlang",
		"go": "golang",
		"ts": "typescript",
		"v8": "typescript",
	}
)

func init() {
	Register("dlang", func(config *common.Config) Target { return dlang.New(config.DLang) })
	Register("golang", func(config *common.Config) Target { return golang.New(config.Golang) })
	Register("typescript", func(config *common.Config) Target { return tsdecl.New(config.TypeScript) })
}

// Register adds a target factory under name.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Names returns the registered target names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Targets builds the named targets. Names are case-insensitive and accept
// the short aliases d, go, ts and v8; duplicates are dropped.
func Targets(names []string, config *common.Config) ([]Target, error) {
	var targets []Target
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if full, ok := aliases[name]; ok {
			name = full
		}
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unsupported target %q (supported: %s)", name, strings.Join(Names(), ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		targets = append(targets, factory(config))
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no target selected (supported: %s)", strings.Join(Names(), ", "))
	}
	return targets, nil
}
