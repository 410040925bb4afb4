package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/errors"
	"github.com/matzehuels/bedjig/pkg/jig"
)

// Format is a configuration file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// ReadBedConfig decodes a bed configuration from r over [bed.DefaultConfig].
func ReadBedConfig(r io.Reader, format Format) (bed.Config, error) {
	cfg := bed.DefaultConfig()
	if err := decode(r, format, &cfg); err != nil {
		return bed.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode bed configuration")
	}
	return cfg, nil
}

// ImportBedConfig reads the bed configuration file at path.
func ImportBedConfig(path string) (bed.Config, error) {
	f, err := open(path)
	if err != nil {
		return bed.Config{}, err
	}
	defer f.Close()

	cfg, err := ReadBedConfig(f, DetectFormat(path))
	if err != nil {
		return bed.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ReadParams decodes template parameters from r over [jig.DefaultParams].
func ReadParams(r io.Reader, format Format) (jig.Params, error) {
	p := jig.DefaultParams()
	if err := decode(r, format, &p); err != nil {
		return jig.Params{}, errors.Wrap(errors.ErrCodeInvalidParams, err, "decode template parameters")
	}
	return p, nil
}

// ImportParams reads the template parameter file at path.
func ImportParams(path string) (jig.Params, error) {
	f, err := open(path)
	if err != nil {
		return jig.Params{}, err
	}
	defer f.Close()

	p, err := ReadParams(f, DetectFormat(path))
	if err != nil {
		return jig.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

// decode fills v from r. Keys absent from the input keep v's current values.
func decode(r io.Reader, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return err
		}
		return nil
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported configuration format %q", format)
	}
}

// ParseBedConfig is ReadBedConfig over an in-memory document.
func ParseBedConfig(data []byte, format Format) (bed.Config, error) {
	return ReadBedConfig(bytes.NewReader(data), format)
}
