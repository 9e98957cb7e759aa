package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads connection settings from the given file on top of the defaults.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func Load(ctx context.Context, path string) (Connection, error) {
	cn := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cn, errors.Errorf("reading config file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading config file")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = loadJSON(data, &cn)
	case ".yaml", ".yml":
		err = loadYAML(data, &cn)
	case ".hcl":
		err = loadHCL(data, path, &cn)
	default:
		return cn, errors.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return cn, err
	}

	return cn, nil
}

func loadJSON(data []byte, cn *Connection) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cn); err != nil {
		return errors.Errorf("parsing JSON config: %w", err)
	}
	return nil
}

func loadYAML(data []byte, cn *Connection) error {
	if err := yaml.Unmarshal(data, cn); err != nil {
		return errors.Errorf("parsing YAML config: %w", err)
	}
	return nil
}

func loadHCL(data []byte, filename string, cn *Connection) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL config: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	if diags := gohcl.DecodeBody(file.Body, evalCtx, cn); diags.HasErrors() {
		return errors.Errorf("decoding HCL config: %s", diags.Error())
	}
	return nil
}
