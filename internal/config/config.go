package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded form of an HCL settings file. Every attribute is
// optional; nil means "not set in the file".
//
//	strict   = true
//	output   = "${home}/plots/adev.png"
//	terminal = false
//	width    = 10
//	height   = 5
//	dpi      = 96
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
type File struct {
	Strict   *bool    `hcl:"strict,optional"`
	Output   *string  `hcl:"output,optional"`
	Terminal *bool    `hcl:"terminal,optional"`
	Width    *float64 `hcl:"width,optional"`
	Height   *float64 `hcl:"height,optional"`
	DPI      *int     `hcl:"dpi,optional"`
	Log      *Log     `hcl:"log,block"`
}

// Log holds the logging settings block.
type Log struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
	File   *string `hcl:"file,optional"`
}

// Load parses and decodes the file at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(path, hclFile)
}

// Parse decodes HCL source held in memory. filename is used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}
	return decode(filename, hclFile)
}

func decode(filename string, hclFile *hcl.File) (*File, error) {
	var f File
	diags := gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return &f, nil
}

// evalContext exposes ${home} to string expressions.
func evalContext() *hcl.EvalContext {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(home),
		},
	}
}

func (f *File) validate() error {
	if f.Width != nil && *f.Width <= 0 {
		return fmt.Errorf("width must be positive, got %v", *f.Width)
	}
	if f.Height != nil && *f.Height <= 0 {
		return fmt.Errorf("height must be positive, got %v", *f.Height)
	}
	if f.DPI != nil && *f.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", *f.DPI)
	}
	if f.Output != nil && f.Terminal != nil && *f.Output != "" && *f.Terminal {
		return fmt.Errorf("output and terminal are mutually exclusive")
	}
	return nil
}

// BoolOr returns *p, or def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// StringOr returns *p, or def when p is nil.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
