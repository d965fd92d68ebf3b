package fsutil

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFilesByExtension(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.hcl":          {Data: []byte("a")},
		"b.txt":          {Data: []byte("b")},
		".hcl":           {Data: []byte("hidden")},
		"c.hcl.bak":      {Data: []byte("c")},
		"nested/d.hcl":   {Data: []byte("d")},
		"nested/e.hcl":   {Data: []byte("e")},
		"dir.hcl/f.hcl":  {Data: []byte("f")},
		"nested/g.other": {Data: []byte("g")},
	}

	root, err := FilesByExtension(fsys, ".", ".hcl")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"a.hcl"}, root); diff != "" {
		t.Errorf("root mismatch (-want +got):\n%s", diff)
	}

	nested, err := FilesByExtension(fsys, "nested", ".hcl")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"nested/d.hcl", "nested/e.hcl"}, nested); diff != "" {
		t.Errorf("nested mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesByExtension_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := FilesByExtension(fstest.MapFS{}, "missing", ".hcl")

	require.Error(t, err)
}

func TestFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = FilesByExtension(fstest.MapFS{}, ".", "")
	})
}
