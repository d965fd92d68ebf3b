// Package devices bundles the device description files that are compiled
// into the binary. Every *.hcl file in this directory is one device; its file
// name without the extension is the public device identifier.
package devices

import "embed"

// FS holds the bundled device files at its root.
//
//go:embed *.hcl
var FS embed.FS
