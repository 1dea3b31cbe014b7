package common

import (
	"fmt"
	"strings"

	"github.com/golang-cz/textcase"
)

const (
	// DefaultGroup is used for methods without a group label.
	DefaultGroup = "core"

	// GeneratorName appears in the header of every generated file.
	GeneratorName = "plugify-bindgen"
)

// ReservedWords is a denylist of identifiers of one rendering target.
type ReservedWords map[string]struct{}

func NewReservedWords(words []string) ReservedWords {
	r := make(ReservedWords, len(words))
	for _, w := range words {
		r[w] = struct{}{}
	}
	return r
}

func (r ReservedWords) Contains(name string) bool {
	_, ok := r[name]
	return ok
}

// Sanitize renames an identifier that collides with a reserved word by
// appending "_". The rewrite is deterministic, so a name renamed at its
// declaration is renamed the same way at every use site.
func (r ReservedWords) Sanitize(name string) string {
	if r.Contains(name) {
		return name + "_"
	}
	return name
}

// ParamName returns a usable parameter name. Empty names and names starting
// with a digit are replaced by "p<index>"; the result is then sanitized.
func (r ReservedWords) ParamName(name string, index int) string {
	name = strings.TrimSpace(name)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = fmt.Sprintf("p%d", index)
	}
	return r.Sanitize(name)
}

// GroupName case-folds a group label into a module identifier,
// e.g. "Core" -> "core", "Player-Stats" -> "player_stats", "2D" -> "_2d".
func GroupName(group string) string {
	group = strings.TrimSpace(group)
	if group == "" {
		return DefaultGroup
	}
	name := textcase.SnakeCase(strings.ToLower(group))
	if name == "" {
		return DefaultGroup
	}
	return identifier(name)
}

// PluginName converts a plugin name into a path and module identifier,
// e.g. "PlayerManager" -> "player_manager", "1Plugin" -> "_1plugin".
func PluginName(name string) string {
	return identifier(textcase.SnakeCase(strings.TrimSpace(name)))
}

// identifier prefixes a name starting with a digit with "_".
func identifier(name string) string {
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

// ManifestBaseName strips the manifest extensions from a file name,
// e.g. "player.pplugin.in" -> "player".
func ManifestBaseName(file string) string {
	for _, ext := range []string{".pplugin.in", ".pplugin", ".json"} {
		if strings.HasSuffix(file, ext) {
			return strings.TrimSuffix(file, ext)
		}
	}
	return file
}
