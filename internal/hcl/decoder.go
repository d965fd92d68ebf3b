package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/trccalc/internal/ctxlog"
	"github.com/vk/trccalc/internal/device"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FileExtension is the extension of device files understood by the Decoder.
const FileExtension = ".hcl"

// deviceFile is the top-level schema of a device document.
type deviceFile struct {
	LoopDelay        float64        `hcl:"loop_delay"`
	MaxPoleZeroRatio float64        `hcl:"max_pole_zero_ratio"`
	OffsetResistance float64        `hcl:"offset_resistance"`
	Ranges           hcl.Expression `hcl:"ranges"`
}

// Decoder is the HCL-specific device document decoder.
type Decoder struct{}

// NewDecoder creates a new HCL device decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses src as an HCL device document. The filename is only used to
// label diagnostics. The returned specification has not been validated.
func (d *Decoder) Decode(ctx context.Context, filename string, src []byte) (*device.Specification, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("HCL device decoding started.", "bytes", len(src))

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root deviceFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	ranges, diags := d.decodeRanges(ctx, root.Ranges)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode ranges in %s: %w", filename, diags)
	}

	spec := &device.Specification{
		LoopDelay:        root.LoopDelay,
		MaxPoleZeroRatio: root.MaxPoleZeroRatio,
		OffsetResistance: root.OffsetResistance,
		Ranges:           ranges,
	}
	logger.Debug("HCL device decoding complete.", "ranges", len(ranges))
	return spec, nil
}

// decodeRanges evaluates the ranges expression, which must be an object or a
// map, and converts every element to a float64 resistance.
func (d *Decoder) decodeRanges(ctx context.Context, expr hcl.Expression) (map[string]float64, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	ty := val.Type()
	if val.IsNull() || !val.IsWhollyKnown() || !(ty.IsObjectType() || ty.IsMapType()) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid ranges",
			Detail:   fmt.Sprintf("ranges must be an object mapping range names to resistances, got %s.", ty.FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}

	ranges := make(map[string]float64, val.LengthInt())
	it := val.ElementIterator()
	for it.Next() {
		key, elem := it.Element()
		name := key.AsString()

		num, err := convert.Convert(elem, cty.Number)
		if err == nil {
			var resistance float64
			if err = gocty.FromCtyValue(num, &resistance); err == nil {
				ranges[name] = resistance
				logger.Debug("Decoded range.", "range", name, "resistance", resistance)
				continue
			}
		}

		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid range resistance",
			Detail:   fmt.Sprintf("range %q: %s.", name, err),
			Subject:  expr.Range().Ptr(),
		})
	}
	return ranges, diags
}
