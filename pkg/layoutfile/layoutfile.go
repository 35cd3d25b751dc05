package layoutfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tiler/pkg/errors"
)

// Format is a layout file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Definition is a decoded layout file.
type Definition struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Scale     *int          `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Templates []TemplateDef `json:"templates" yaml:"templates" toml:"templates"`
	Relations []RelationDef `json:"relations,omitempty" yaml:"relations,omitempty" toml:"relations,omitempty"`
}

// TemplateDef declares one child template.
type TemplateDef struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Kind is a shape kind such as "AlternatingSquare". The template type
	// name ("AlternatingSquareTemplate") is accepted too.
	Kind    string         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	AliasOf string         `json:"alias_of,omitempty" yaml:"alias_of,omitempty" toml:"alias_of,omitempty"`
	Indices []int          `json:"indices" yaml:"indices" toml:"indices"`
}

// RelationDef places one template relative to another. Either Relation or
// both corners must be set.
type RelationDef struct {
	Positioned       string `json:"positioned" yaml:"positioned" toml:"positioned"`
	Anchor           string `json:"anchor" yaml:"anchor" toml:"anchor"`
	Relation         string `json:"relation,omitempty" yaml:"relation,omitempty" toml:"relation,omitempty"`
	PositionedCorner string `json:"positioned_corner,omitempty" yaml:"positioned_corner,omitempty" toml:"positioned_corner,omitempty"`
	AnchorCorner     string `json:"anchor_corner,omitempty" yaml:"anchor_corner,omitempty" toml:"anchor_corner,omitempty"`
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported layout file %q: expected .toml, .yaml, .yml or .json", filepath.Base(path))
	}
}

// Load reads and decodes the layout file at path. The name defaults to the
// file's base name without extension.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read layout %s", path)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "layout %s", path)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Parse decodes a layout in the given format and validates its structure.
func Parse(data []byte, format Format) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "layout is empty")
	}
	var d Definition
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown layout format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s layout", format)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// JSON encodes d as compact JSON. Equal definitions encode to equal bytes,
// which makes the encoding usable as a cache key.
func (d *Definition) JSON() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedType, err, "encode layout")
	}
	return data, nil
}

// Validate checks names and references without building any template.
func (d *Definition) Validate() error {
	if d.Scale != nil {
		if err := errors.ValidateScale(*d.Scale); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(d.Templates))
	for i, t := range d.Templates {
		if t.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "templates[%d] has no name", i)
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate template name %q", t.Name)
		}
		switch {
		case t.AliasOf != "" && (t.Kind != "" || len(t.Params) > 0):
			return errors.New(errors.ErrCodeInvalidInput, "template %q sets both alias_of and kind/params", t.Name)
		case t.AliasOf != "" && !seen[t.AliasOf]:
			return errors.New(errors.ErrCodeInvalidInput, "template %q aliases unknown or later template %q", t.Name, t.AliasOf)
		case t.AliasOf == "" && t.Kind == "":
			return errors.New(errors.ErrCodeInvalidInput, "template %q has no kind", t.Name)
		}
		seen[t.Name] = true
	}
	for i, r := range d.Relations {
		for _, name := range []string{r.Positioned, r.Anchor} {
			if !seen[name] {
				return errors.New(errors.ErrCodeInvalidInput, "relations[%d] references unknown template %q", i, name)
			}
		}
		hasCorners := r.PositionedCorner != "" || r.AnchorCorner != ""
		switch {
		case r.Relation != "" && hasCorners:
			return errors.New(errors.ErrCodeInvalidInput, "relations[%d] sets both relation and corners", i)
		case r.Relation == "" && (r.PositionedCorner == "" || r.AnchorCorner == ""):
			return errors.New(errors.ErrCodeInvalidInput, "relations[%d] needs a relation or both corners", i)
		}
	}
	return nil
}
