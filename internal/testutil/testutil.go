// Package testutil provides shared fixtures for tests that need a device
// catalog without touching the bundled devices.
package testutil

import (
	"testing/fstest"

	"github.com/vk/trccalc/internal/catalog"
	"github.com/vk/trccalc/internal/hcl"
)

// ExampleDevice is the reference device used throughout the tests.
const ExampleDevice = `
loop_delay          = 5e-9
max_pole_zero_ratio = 10.0
offset_resistance   = 50.0

ranges = {
  "10k"  = 1.0e4
  "100k" = 1.0e5
  "1M"   = 1.0e6
}
`

// NewCatalog returns a catalog over in-memory device files, keyed by device
// name without the file extension.
func NewCatalog(devices map[string]string) *catalog.Catalog {
	fsys := fstest.MapFS{}
	for name, src := range devices {
		fsys[name+hcl.FileExtension] = &fstest.MapFile{Data: []byte(src)}
	}
	return catalog.New(fsys, hcl.NewDecoder(), hcl.FileExtension)
}
