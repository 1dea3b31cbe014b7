package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// DefaultConfigFile is loaded when present and no config file is given.
const DefaultConfigFile = "plugify-bindgen.yml"

type Config struct {
	Output     string           `yaml:"output" toml:"output"`
	Override   bool             `yaml:"override" toml:"override"`
	Targets    []string         `yaml:"targets" toml:"targets"`
	Verbose    bool             `yaml:"verbose" toml:"verbose"`
	DLang      DLangConfig      `yaml:"dlang" toml:"dlang"`
	TypeScript TypeScriptConfig `yaml:"typescript" toml:"typescript"`
	Golang     GolangConfig     `yaml:"golang" toml:"golang"`
}

type DLangConfig struct {
	ModulePrefix  string `yaml:"modulePrefix" toml:"modulePrefix"`   // e.g. "imported" -> module imported.<plugin>.<group>
	RuntimeImport string `yaml:"runtimeImport" toml:"runtimeImport"` // module providing the wrapper types and the resolver
	PublicImport  string `yaml:"publicImport" toml:"publicImport"`   // module re-exported to users, declares Vec2..Mat4x4
	Resolver      string `yaml:"resolver" toml:"resolver"`           // symbol resolution call, receives the funcName
}

type TypeScriptConfig struct {
	RuntimeModule string `yaml:"runtimeModule" toml:"runtimeModule"` // module declaring Vector2..Matrix4x4
}

type GolangConfig struct {
	PackageDir    string `yaml:"packageDir" toml:"packageDir"`       // directory holding one package per plugin
	RuntimeImport string `yaml:"runtimeImport" toml:"runtimeImport"` // package providing the carriers and the resolver
	Resolver      string `yaml:"resolver" toml:"resolver"`           // function of the runtime package, receives the funcName
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Output:  "./generated",
		Targets: []string{"dlang", "typescript"},
		DLang: DLangConfig{
			ModulePrefix:  "imported",
			RuntimeImport: "plugify.internals",
			PublicImport:  "plugify",
			Resolver:      "_MethodPointer",
		},
		TypeScript: TypeScriptConfig{
			RuntimeModule: "plugify",
		},
		Golang: GolangConfig{
			PackageDir:    "golang",
			RuntimeImport: "github.com/untrustedmodders/go-plugify",
			Resolver:      "GetMethodPtr",
		},
	}
}

// LoadConfig reads a YAML or TOML config file on top of the defaults. An
// empty path loads DefaultConfigFile if it exists.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	optional := false
	if path == "" {
		path = DefaultConfigFile
		optional = true
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(bytes, config)
	case ".yml", ".yaml", "":
		err = yaml.Unmarshal(bytes, config)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}
