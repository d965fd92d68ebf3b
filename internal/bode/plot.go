package bode

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/vk/trccalc/internal/siunit"
	"github.com/vk/trccalc/internal/trc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Canvas formats selectable through FormatFromPath.
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Plot dimensions.
const (
	Width  = 6 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	responseColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	zeroColor     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	poleColor     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// supportedFormats lists the file extensions Render accepts.
var supportedFormats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf"}

// FormatFromPath returns the image format implied by the extension of path.
func FormatFromPath(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range supportedFormats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported plot format %q: must be one of %s", format, strings.Join(supportedFormats, ", "))
}

// Render draws the magnitude and phase of the sampled response, one above
// the other, and writes the image in the given format to w.
func Render(w io.Writer, result trc.CustomTrc, sweep []Point, format string) error {
	if len(sweep) == 0 {
		return errors.New("nothing to plot: empty sweep")
	}

	mag := newPanel(fmt.Sprintf("Compensation response, fc = %s, pole/zero = %.3g",
		siunit.Format(result.CompensationFreq, 3, "Hz"), result.PoleZeroRatio), "Magnitude (dB)")
	phase := newPanel("", "Phase (°)")

	magXYs := make(plotter.XYs, len(sweep))
	phaseXYs := make(plotter.XYs, len(sweep))
	for i, p := range sweep {
		magXYs[i] = plotter.XY{X: p.Frequency, Y: p.Magnitude}
		phaseXYs[i] = plotter.XY{X: p.Frequency, Y: p.Phase}
	}

	if err := addTrace(mag, magXYs, result); err != nil {
		return err
	}
	if err := addTrace(phase, phaseXYs, result); err != nil {
		return err
	}
	mag.Legend.Top = true

	canvas, err := draw.NewFormattedCanvas(Width, Height, format)
	if err != nil {
		return fmt.Errorf("failed to create %s canvas: %w", format, err)
	}

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	plots := [][]*plot.Plot{{mag}, {phase}}
	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for row := range plots {
		plots[row][0].Draw(canvases[row][0])
	}

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func newPanel(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	return p
}

// addTrace plots xys and marks the zero and pole with dashed verticals.
func addTrace(p *plot.Plot, xys plotter.XYs, result trc.CustomTrc) error {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build response line: %w", err)
	}
	line.Color = responseColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("H(f)", line)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, xy := range xys {
		lo = math.Min(lo, xy.Y)
		hi = math.Max(hi, xy.Y)
	}
	if hi-lo < 1 {
		lo, hi = lo-1, hi+1
	}

	markers := []struct {
		name  string
		freq  float64
		color color.Color
	}{
		{"zero", result.Zero(), zeroColor},
		{"pole", result.Pole(), poleColor},
	}
	for _, m := range markers {
		marker, err := plotter.NewLine(plotter.XYs{{X: m.freq, Y: lo}, {X: m.freq, Y: hi}})
		if err != nil {
			return fmt.Errorf("failed to build %s marker: %w", m.name, err)
		}
		marker.Color = m.color
		marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(marker)
		p.Legend.Add(m.name, marker)
	}
	return nil
}
