package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/baus/internal/store"
)

//go:embed schema.cue
var schemaCUE string

// File is the optional YAML profile file.
//
//	cache_dir: /tmp/baus
//	defaults:
//	  backend: sqlite
//	profiles:
//	  commands:
//	    value: timestamp
//	    desc: true
type File struct {
	CacheDir string             `yaml:"cache_dir,omitempty"`
	Defaults Profile            `yaml:"defaults,omitempty"`
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile holds per-name defaults. Nil fields are unset and fall through to
// the next layer.
type Profile struct {
	Value     *string `yaml:"value,omitempty"`
	Desc      *bool   `yaml:"desc,omitempty"`
	Cleanup   *bool   `yaml:"cleanup,omitempty"`
	Backend   *string `yaml:"backend,omitempty"`
	Normalize *bool   `yaml:"normalize,omitempty"`
}

// LoadFile reads and validates a profile file.
// A missing file is not an error when optional is true; an empty File is
// returned instead.
func LoadFile(path string, optional bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}
	return ParseFile(path, data)
}

// ParseFile validates data against the profile schema and decodes it.
// The filename is only used in error messages.
func ParseFile(filename string, data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &File{}, nil
	}

	if err := validateSchema(filename, data); err != nil {
		return nil, err
	}

	// Strict decoding catches typos the schema would also reject, and keeps
	// the two layers honest with each other.
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filename, err)
	}
	for name := range f.Profiles {
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("%s: profile: %w", filename, err)
		}
	}
	return &f, nil
}

// validateSchema unifies the YAML document with #Config from schema.cue.
func validateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	expr, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filename, err)
	}
	doc := ctx.BuildFile(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, filename, cueerrors.Details(err, nil))
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, filename, cueerrors.Details(err, nil))
	}
	return nil
}

// Apply layers the file's cache_dir, defaults, and the profile for c.Name
// onto c. Fields the caller marked as explicitly set are never overridden.
// Sort-only fields are ignored for Save and vice versa.
func (f *File) Apply(c Config, explicit Explicit) (Config, error) {
	if f.CacheDir != "" && !explicit.CacheDir {
		c.CacheDir = f.CacheDir
	}

	layers := []Profile{f.Defaults}
	if p, ok := f.Profiles[c.Name]; ok {
		layers = append(layers, p)
	}

	for _, p := range layers {
		if p.Backend != nil && !explicit.Backend {
			kind, err := store.ParseKind(*p.Backend)
			if err != nil {
				return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			c.Backend = kind
		}
		if p.Normalize != nil && !explicit.Normalize {
			c.Normalize = *p.Normalize
		}

		switch c.Action {
		case ActionSort:
			if p.Desc != nil && !explicit.Desc {
				c.Desc = *p.Desc
			}
			if p.Cleanup != nil && !explicit.Cleanup {
				c.Cleanup = *p.Cleanup
			}
		case ActionSave:
			if p.Value != nil && !explicit.Value {
				v, err := ParseValueKind(*p.Value)
				if err != nil {
					return c, err
				}
				c.Value = v
			}
		}
	}
	return c, nil
}

// Explicit records which settings were given on the command line.
type Explicit struct {
	Value     bool
	Desc      bool
	Cleanup   bool
	Backend   bool
	CacheDir  bool
	Normalize bool
}
