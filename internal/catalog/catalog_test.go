package catalog

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/trccalc/internal/ctxlog"
	"github.com/vk/trccalc/internal/hcl"
)

const validDevice = `
loop_delay          = 5e-9
max_pole_zero_ratio = 10
offset_resistance   = 50
ranges              = { "10k" = 1e4 }
`

func newTestCatalog() *Catalog {
	fsys := fstest.MapFS{
		"zeta.hcl":       {Data: []byte(validDevice)},
		"alpha.hcl":      {Data: []byte(validDevice)},
		"README.md":      {Data: []byte("not a device")},
		".hcl":           {Data: []byte(validDevice)},
		"broken.hcl":     {Data: []byte("loop_delay = ")},
		"invalid.hcl":    {Data: []byte("loop_delay = 0\nmax_pole_zero_ratio = 0.5\noffset_resistance = 0\nranges = { a = 1 }\n")},
		"nested/sub.hcl": {Data: []byte(validDevice)},
	}
	return New(fsys, hcl.NewDecoder(), hcl.FileExtension)
}

func TestList(t *testing.T) {
	t.Parallel()

	names, err := newTestCatalog().List()

	require.NoError(t, err)
	if diff := cmp.Diff([]string{"alpha", "broken", "invalid", "zeta"}, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())

	spec, err := newTestCatalog().Load(ctx, "alpha")

	require.NoError(t, err)
	require.Equal(t, 10.0, spec.MaxPoleZeroRatio)
	require.Equal(t, map[string]float64{"10k": 1e4}, spec.Ranges)
}

func TestLoad_UnknownDevice(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	cat := newTestCatalog()

	for _, name := range []string{"missing", "", "README", "nested/sub", "../alpha", `nested\sub`} {
		spec, err := cat.Load(ctx, name)
		require.Nil(t, spec)
		require.True(t, errors.Is(err, ErrUnknownDevice), "name %q: expected ErrUnknownDevice, got %v", name, err)
	}
}

func TestLoad_CorruptSpec(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	cat := newTestCatalog()

	for _, name := range []string{"broken", "invalid"} {
		_, err := cat.Load(ctx, name)

		var corrupt *CorruptSpecError
		require.True(t, errors.As(err, &corrupt), "name %q: expected CorruptSpecError, got %v", name, err)
		require.Equal(t, name, corrupt.Device)
		require.Contains(t, err.Error(), name)
	}
}

func TestBundled_AllDevicesLoad(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.Discard(context.Background())
	cat := Bundled()

	names, err := cat.List()
	require.NoError(t, err)
	require.Contains(t, names, "example")

	for _, name := range names {
		spec, err := cat.Load(ctx, name)
		require.NoError(t, err, "bundled device %q must load", name)
		require.NotEmpty(t, spec.Ranges)
	}
}
