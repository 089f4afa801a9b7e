package figure

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/specbox/pkg/errors"
)

// Format is a figure document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatJSON, FormatTOML, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown figure format %q (must be one of: json, toml, yaml)", s)
}

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Read decodes a figure document.
func Read(r io.Reader, format Format) (*Figure, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "read figure")
	}
	return Unmarshal(data, format)
}

// Unmarshal decodes a figure document. TOML and YAML documents use the
// JSON field names.
func Unmarshal(data []byte, format Format) (*Figure, error) {
	switch format {
	case FormatJSON:
	case FormatTOML:
		var doc map[string]any
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode toml")
		}
		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "convert toml")
		}
	case FormatYAML:
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode yaml")
		}
		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "convert yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown figure format %q", format)
	}

	var f Figure
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "decode figure")
	}
	return &f, nil
}

// Marshal encodes f.
func Marshal(f *Figure, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	if format == FormatJSON {
		return data, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(dropNulls(doc)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown figure format %q", format)
}

// Write encodes f to w.
func Write(w io.Writer, f *Figure, format Format) error {
	data, err := Marshal(f, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadFile reads a figure, picking the format from the file extension.
func ReadFile(path string) (*Figure, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFigure, err, "read %s", path)
	}
	return Unmarshal(data, format)
}

// WriteFile writes f, picking the format from the file extension.
func WriteFile(path string, f *Figure) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// dropNulls removes null members, which TOML cannot express. Null array
// entries become empty strings so positions keep their index.
func dropNulls(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			if e == nil {
				delete(x, k)
				continue
			}
			x[k] = dropNulls(e)
		}
		return x
	case []any:
		for i, e := range x {
			if e == nil {
				x[i] = ""
				continue
			}
			x[i] = dropNulls(e)
		}
		return x
	default:
		return v
	}
}
