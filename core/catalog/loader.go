// Package catalog - Catalog file formats (HCL and YAML)
package catalog

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

//go:embed catalog.hcl
var builtinHCL []byte

// document is the on-disk catalog shape shared by the HCL and YAML formats
type document struct {
	Tools []toolSpec `hcl:"tool,block" yaml:"tools"`
}

type toolSpec struct {
	Key          string            `hcl:"key,label" yaml:"key"`
	Cost         float64           `hcl:"cost" yaml:"cost"`
	Currency     string            `hcl:"currency" yaml:"currency"`
	Alternatives []alternativeSpec `hcl:"alternative,block" yaml:"alternatives"`
}

type alternativeSpec struct {
	Name     string  `hcl:"name,label" yaml:"name"`
	Cost     float64 `hcl:"cost" yaml:"cost"`
	Currency string  `hcl:"currency" yaml:"currency"`
	Notes    string  `hcl:"notes,optional" yaml:"notes"`
}

// monthlyFunc spreads an annual price over twelve months: monthly(159.99)
var monthlyFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "annual", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return args[0].Divide(cty.NumberIntVal(12)), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"monthly": monthlyFunc,
		},
	}
}

// LoadFile loads a catalog from disk, choosing the format by extension
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Catalog("failed to read catalog", err).WithContext("path", path)
	}

	logging.Debug("loading catalog", zap.String("path", path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(src, path)
	case ".yaml", ".yml":
		return ParseYAML(src)
	default:
		return nil, errors.Newf(errors.TypeCatalog, "unsupported catalog format %q (want .hcl, .yaml or .yml)", filepath.Ext(path))
	}
}

// ParseHCL builds a catalog from HCL source
func ParseHCL(src []byte, filename string) (*Catalog, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Catalog("failed to parse catalog", diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &doc); diags.HasErrors() {
		return nil, errors.Catalog("failed to decode catalog", diags)
	}
	return doc.build()
}

// ParseYAML builds a catalog from YAML source
func ParseYAML(src []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Catalog("failed to parse catalog", err)
	}
	return doc.build()
}

func (d document) build() (*Catalog, error) {
	entries := make([]types.CatalogEntry, 0, len(d.Tools))
	for _, t := range d.Tools {
		entry := types.CatalogEntry{
			Key:      t.Key,
			BaseCost: decimal.NewFromFloat(t.Cost),
			Currency: currencyOf(t.Currency),
		}
		for _, a := range t.Alternatives {
			entry.Alternatives = append(entry.Alternatives, types.Alternative{
				Name:     a.Name,
				Cost:     decimal.NewFromFloat(a.Cost),
				Currency: currencyOf(a.Currency),
				Notes:    a.Notes,
			})
		}
		entries = append(entries, entry)
	}
	return New(entries)
}

// currencyOf normalises case only; validation rejects unknown codes
func currencyOf(s string) types.Currency {
	return types.Currency(strings.ToUpper(strings.TrimSpace(s)))
}
