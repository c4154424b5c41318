package schedule

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"barodeal/core/types"
	apperrors "barodeal/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "region", Required: true},
		{Name: "source", Required: true},
		{Name: "effective_from", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "schedule", LabelNames: []string{"category"}},
	},
}

var scheduleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "deal_types", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "tier"},
	},
}

var tierSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "min"},
		{Name: "max"},
		{Name: "rate", Required: true},
		{Name: "cap"},
	},
}

// LoadFile parses an HCL schedule file from disk and builds a table from it.
func LoadFile(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Config("failed to read schedule file", err)
	}
	schedules, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	return NewTable(schedules)
}

// Parse decodes one region's schedule file. A schedule block listing several
// deal types yields one Schedule per deal type sharing the same tiers.
func Parse(src []byte, filename string) ([]Schedule, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	regionName, err := stringAttr(content.Attributes["region"])
	if err != nil {
		return nil, err
	}
	region, ok := types.ParseRegion(regionName)
	if !ok {
		return nil, apperrors.Config(fmt.Sprintf("%s: unknown region %q", filename, regionName), nil)
	}

	var prov Provenance
	if prov.Source, err = stringAttr(content.Attributes["source"]); err != nil {
		return nil, err
	}
	if prov.EffectiveFrom, err = stringAttr(content.Attributes["effective_from"]); err != nil {
		return nil, err
	}

	var schedules []Schedule
	for _, block := range content.Blocks {
		category := types.PropertyCategory(block.Labels[0])
		if !category.IsValid() {
			return nil, blockError(block, fmt.Sprintf("unknown property category %q", block.Labels[0]))
		}

		deals, tiers, err := parseScheduleBody(block)
		if err != nil {
			return nil, err
		}
		for _, deal := range deals {
			schedules = append(schedules, Schedule{
				Key:        Key{Region: region, Category: category, Deal: deal},
				Tiers:      tiers,
				Provenance: prov,
			})
		}
	}
	return schedules, nil
}

func parseScheduleBody(block *hcl.Block) ([]types.DealType, []RateTier, error) {
	content, diags := block.Body.Content(scheduleSchema)
	if diags.HasErrors() {
		return nil, nil, diagError(diags)
	}

	dealVal, diags := content.Attributes["deal_types"].Expr.Value(nil)
	if diags.HasErrors() {
		return nil, nil, diagError(diags)
	}
	if !dealVal.CanIterateElements() {
		return nil, nil, blockError(block, "deal_types must be a list of strings")
	}

	var deals []types.DealType
	for it := dealVal.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || v.Type() != cty.String {
			return nil, nil, blockError(block, "deal_types must be a list of strings")
		}
		deal := types.DealType(v.AsString())
		if !deal.IsValid() {
			return nil, nil, blockError(block, fmt.Sprintf("unknown deal type %q", v.AsString()))
		}
		deals = append(deals, deal)
	}

	var tiers []RateTier
	for _, tb := range content.Blocks {
		tier, err := parseTier(tb)
		if err != nil {
			return nil, nil, err
		}
		tiers = append(tiers, tier)
	}
	return deals, tiers, nil
}

func parseTier(block *hcl.Block) (RateTier, error) {
	content, diags := block.Body.Content(tierSchema)
	if diags.HasErrors() {
		return RateTier{}, diagError(diags)
	}

	var tier RateTier
	var err error
	if tier.Rate, err = decimalAttr(content.Attributes["rate"]); err != nil {
		return RateTier{}, err
	}
	if attr, ok := content.Attributes["min"]; ok {
		if tier.Min, err = decimalAttr(attr); err != nil {
			return RateTier{}, err
		}
	}
	if attr, ok := content.Attributes["max"]; ok {
		upper, err := decimalAttr(attr)
		if err != nil {
			return RateTier{}, err
		}
		tier.Max = &upper
	}
	if attr, ok := content.Attributes["cap"]; ok {
		c, err := decimalAttr(attr)
		if err != nil {
			return RateTier{}, err
		}
		tier.Cap = &c
	}
	return tier, nil
}

// decimalAttr accepts a number literal or a quoted decimal string. Numbers go
// through their shortest exact text form so 0.004 stays 0.004.
func decimalAttr(attr *hcl.Attribute) (decimal.Decimal, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, diagError(diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return decimal.Zero, attrError(attr, "value must be set")
	}

	var text string
	switch val.Type() {
	case cty.Number:
		text = val.AsBigFloat().Text('f', -1)
	case cty.String:
		text = val.AsString()
	default:
		return decimal.Zero, attrError(attr, "expected a number")
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, attrError(attr, fmt.Sprintf("invalid number %q", text))
	}
	return d, nil
}

func stringAttr(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diagError(diags)
	}
	if val.IsNull() || val.Type() != cty.String {
		return "", attrError(attr, "expected a string")
	}
	return val.AsString(), nil
}

func diagError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		if d.Subject != nil {
			msg = fmt.Sprintf("%s:%d: %s", d.Subject.Filename, d.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return apperrors.Config("failed to parse schedule", fmt.Errorf("%s", strings.Join(msgs, "; ")))
}

func blockError(block *hcl.Block, msg string) error {
	return apperrors.Config(fmt.Sprintf("%s:%d: %s", block.DefRange.Filename, block.DefRange.Start.Line, msg), nil)
}

func attrError(attr *hcl.Attribute, msg string) error {
	return apperrors.Config(fmt.Sprintf("%s:%d: %s: %s", attr.Range.Filename, attr.Range.Start.Line, attr.Name, msg), nil)
}
