package bode

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/trccalc/internal/trc"
)

// tenfold has its zero at 1 kHz and its pole at 10 kHz.
var tenfold = trc.CustomTrc{
	GainBandwidth:    1e4,
	CompensationFreq: math.Sqrt(1e3 * 1e4),
	PoleZeroRatio:    10,
}

func TestResponse_Asymptotes(t *testing.T) {
	t.Parallel()

	low := Response(1e-3, 1e3, 1e4)
	high := Response(1e12, 1e3, 1e4)

	require.InDelta(t, 0, 20*math.Log10(math.Hypot(real(low), imag(low))), 1e-6)
	require.InDelta(t, 20, 20*math.Log10(math.Hypot(real(high), imag(high))), 1e-6)
}

func TestSweep(t *testing.T) {
	t.Parallel()

	// --- Act ---
	sweep, err := Sweep(tenfold, DefaultDecades, DefaultPoints)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, sweep, DefaultPoints)

	fc := tenfold.CompensationFreq
	require.InEpsilon(t, fc/1e3, sweep[0].Frequency, 1e-9)
	require.InEpsilon(t, fc*1e3, sweep[len(sweep)-1].Frequency, 1e-9)
	require.InEpsilon(t, fc, sweep[DefaultPoints/2].Frequency, 1e-9)

	for i := 1; i < len(sweep); i++ {
		require.Greater(t, sweep[i].Frequency, sweep[i-1].Frequency)
		require.GreaterOrEqual(t, sweep[i].Magnitude, sweep[i-1].Magnitude-1e-12, "a lead network never loses gain")
	}

	// The lead network's phase peaks at the geometric mean of zero and pole.
	peak := sweep[0]
	for _, p := range sweep {
		if p.Phase > peak.Phase {
			peak = p
		}
	}
	require.InEpsilon(t, fc, peak.Frequency, 0.05)
	require.InDelta(t, 10, sweep[DefaultPoints/2].Magnitude, 0.01)
}

func TestSweep_RejectsDegenerateInput(t *testing.T) {
	t.Parallel()

	_, err := Sweep(trc.CustomTrc{CompensationFreq: 0, PoleZeroRatio: 10}, 3, 10)
	require.Error(t, err)

	_, err = Sweep(tenfold, 0, 10)
	require.Error(t, err)

	_, err = Sweep(tenfold, 3, 1)
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path      string
		expected  string
		expectErr bool
	}{
		{path: "out/bode.png", expected: "png"},
		{path: "BODE.SVG", expected: "svg"},
		{path: "report.pdf", expected: "pdf"},
		{path: "bode.gif", expectErr: true},
		{path: "bode", expectErr: true},
	}

	for _, tc := range testCases {
		got, err := FormatFromPath(tc.path)
		if tc.expectErr {
			require.Error(t, err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.expected, got)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	sweep, err := Sweep(tenfold, 2, 50)
	require.NoError(t, err)

	testCases := []struct {
		format string
		marker []byte
	}{
		{format: "png", marker: []byte("\x89PNG")},
		{format: "svg", marker: []byte("<svg")},
		{format: "pdf", marker: []byte("%PDF")},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}

			err := Render(buf, tenfold, sweep, tc.format)

			require.NoError(t, err)
			require.True(t, bytes.Contains(buf.Bytes(), tc.marker), "expected %s output to contain %q", tc.format, tc.marker)
		})
	}
}

func TestRender_EmptySweep(t *testing.T) {
	t.Parallel()

	err := Render(&bytes.Buffer{}, tenfold, nil, "png")

	require.Error(t, err)
}
