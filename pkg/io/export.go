package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bedjig/pkg/bed"
	"github.com/matzehuels/bedjig/pkg/errors"
	"github.com/matzehuels/bedjig/pkg/jig"
)

type layoutDocument struct {
	Config  bed.Config         `json:"config"`
	Parts   bed.Parts          `json:"parts"`
	Metrics bed.Metrics        `json:"metrics"`
	CutList []bed.CutListEntry `json:"cutList"`
}

// WriteLayoutJSON encodes cfg and its computed layout as indented JSON.
func WriteLayoutJSON(cfg bed.Config, l bed.Layout, w io.Writer) error {
	doc := layoutDocument{
		Config:  cfg,
		Parts:   l.Parts,
		Metrics: l.Metrics,
		CutList: bed.CutList(l),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			return errors.Wrap(errors.ErrCodeNonFinite, err, "layout contains non-finite values")
		}
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayoutJSON writes the layout document to a file at path.
func ExportLayoutJSON(cfg bed.Config, l bed.Layout, path string) error {
	return create(path, func(w io.Writer) error { return WriteLayoutJSON(cfg, l, w) })
}

// WriteBedConfigTOML encodes cfg as TOML.
func WriteBedConfigTOML(cfg bed.Config, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportBedConfigTOML writes cfg to a TOML file at path.
func ExportBedConfigTOML(cfg bed.Config, path string) error {
	return create(path, func(w io.Writer) error { return WriteBedConfigTOML(cfg, w) })
}

// WriteParamsTOML encodes p as TOML.
func WriteParamsTOML(p jig.Params, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportParamsTOML writes p to a TOML file at path.
func ExportParamsTOML(p jig.Params, path string) error {
	return create(path, func(w io.Writer) error { return WriteParamsTOML(p, w) })
}

func create(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
