// Package profile persists which platforms, extensions and elements are
// selected for generation, and replays a saved selection onto a registry.
package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	btoml "github.com/BurntSushi/toml"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Vulkan-FIT/vkcpp-gen/am"
	"github.com/Vulkan-FIT/vkcpp-gen/errors"
	"github.com/Vulkan-FIT/vkcpp-gen/logger"
	"github.com/Vulkan-FIT/vkcpp-gen/registry"
)

// Entry selects one element by name, or every element whose name matches
// Pattern.
type Entry struct {
	Name    string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Pattern string `toml:"pattern,omitempty" yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Enabled bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
}

// Profile is a saved selection. Sections apply in field order and entries
// within a section in file order; a later entry overrides an earlier one.
type Profile struct {
	Platforms  []Entry `toml:"platforms" yaml:"platforms" json:"platforms"`
	Extensions []Entry `toml:"extensions" yaml:"extensions" json:"extensions"`
	Types      []Entry `toml:"types" yaml:"types" json:"types"`
	Commands   []Entry `toml:"commands" yaml:"commands" json:"commands"`
}

func (e Entry) matcher() (func(string) bool, error) {
	if e.Pattern == "" {
		if e.Name == "" {
			return nil, errors.NewConfigurationError("profile entry needs a name or a pattern")
		}
		return func(s string) bool { return s == e.Name }, nil
	}
	re, err := regexp.Compile("^(?:" + e.Pattern + ")$")
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapConfiguration(err, "invalid profile pattern "+e.Pattern),
			"patterns are Go regular expressions matched against the whole name")
	}
	return re.MatchString, nil
}

// Validate checks that every entry names something and every pattern
// compiles.
func (p *Profile) Validate() error {
	for _, section := range [][]Entry{p.Platforms, p.Extensions, p.Types, p.Commands} {
		for _, e := range section {
			if _, err := e.matcher(); err != nil {
				return err
			}
		}
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the profile as YAML for .yaml/.yml paths and TOML otherwise,
// rotating backups of a previous file.
func Save(p *Profile, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = toml.Marshal(p)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal profile")
	}
	if err := am.CreateBackup(path); err != nil {
		return errors.Wrap(err, "failed to back up profile")
	}
	if err := os.WriteFile(path, data, am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write profile %s", path)
	}
	logger.Infow("profile saved", logger.FieldFile, path,
		"platforms", len(p.Platforms), "extensions", len(p.Extensions),
		"types", len(p.Types), "commands", len(p.Commands))
	return nil
}

// Load reads a profile. Unknown keys are reported and ignored in TOML and
// rejected in YAML.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapConfiguration(err, "failed to read profile "+path),
			"create one with: vkgen profile save")
	}

	var p Profile
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, errors.WrapConfiguration(err, "failed to parse profile "+path)
		}
	} else {
		md, err := btoml.Decode(string(data), &p)
		if err != nil {
			return nil, errors.WrapConfiguration(err, "failed to parse profile "+path)
		}
		for _, key := range md.Undecoded() {
			logger.Warnw("unknown profile key", logger.FieldFile, path, "key", key.String())
		}
	}

	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "profile %s", path)
	}
	return &p, nil
}

// FromRegistry snapshots the current selection of r.
func FromRegistry(r *registry.Registry) *Profile {
	p := &Profile{}
	for _, pl := range r.Platforms() {
		p.Platforms = append(p.Platforms, Entry{Name: pl.Name, Enabled: pl.Enabled})
	}
	for _, e := range r.Extensions() {
		p.Extensions = append(p.Extensions, Entry{Name: e.Name, Enabled: r.Graph.IsEnabled(e.ID)})
	}
	r.Graph.Each(func(id registry.NodeID) {
		entry := Entry{Name: r.Graph.Name(id), Enabled: r.Graph.IsEnabled(id)}
		switch r.Graph.Kind(id) {
		case registry.KindCommand:
			p.Commands = append(p.Commands, entry)
		case registry.KindExtension:
		default:
			p.Types = append(p.Types, entry)
		}
	})
	return p
}
