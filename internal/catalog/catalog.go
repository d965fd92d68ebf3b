// Package catalog enumerates and loads the device descriptions bundled with
// the binary.
//
// The catalog works over any fs.FS whose root holds one file per device. Only
// files with the decoder's extension take part; the device name is the file
// name with that extension removed. A bundled file that fails to decode or
// validate is reported as a *CorruptSpecError, which callers should treat as a
// build defect rather than a user error.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/vk/trccalc/devices"
	"github.com/vk/trccalc/internal/ctxlog"
	"github.com/vk/trccalc/internal/device"
	"github.com/vk/trccalc/internal/fsutil"
	"github.com/vk/trccalc/internal/hcl"
)

// ErrUnknownDevice is returned by Load when no device has the requested name.
var ErrUnknownDevice = errors.New("unknown device")

// Decoder turns the raw bytes of a device file into a specification.
type Decoder interface {
	Decode(ctx context.Context, filename string, src []byte) (*device.Specification, error)
}

// CorruptSpecError reports a bundled device file that could not be used.
type CorruptSpecError struct {
	Device string
	Err    error
}

// Error implements the error interface for CorruptSpecError.
func (e *CorruptSpecError) Error() string {
	return fmt.Sprintf("bundled device %q is corrupt: %v", e.Device, e.Err)
}

// Unwrap returns the underlying decode or validation error.
func (e *CorruptSpecError) Unwrap() error {
	return e.Err
}

// Catalog is a read-only collection of device files.
type Catalog struct {
	fsys      fs.FS
	decoder   Decoder
	extension string
}

// New creates a catalog over fsys. Files must carry the given extension,
// including the leading dot.
func New(fsys fs.FS, decoder Decoder, extension string) *Catalog {
	if extension == "" {
		panic("extension must not be empty")
	}
	return &Catalog{fsys: fsys, decoder: decoder, extension: extension}
}

// Bundled returns the catalog of devices embedded in the binary.
func Bundled() *Catalog {
	return New(devices.FS, hcl.NewDecoder(), hcl.FileExtension)
}

// List returns the names of all devices in lexicographic order.
func (c *Catalog) List() ([]string, error) {
	files, err := fsutil.FilesByExtension(c.fsys, ".", c.extension)
	if err != nil {
		return nil, fmt.Errorf("failed to read device catalog: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, strings.TrimSuffix(file, c.extension))
	}
	slices.Sort(names)
	return names, nil
}

// Load decodes and validates the named device.
func (c *Catalog) Load(ctx context.Context, name string) (*device.Specification, error) {
	logger := ctxlog.FromContext(ctx).With("device", name)
	logger.Debug("Loading device from catalog.")

	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w %q", ErrUnknownDevice, name)
	}

	filename := name + c.extension
	src, err := fs.ReadFile(c.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Device file not found.", "file", filename)
			return nil, fmt.Errorf("%w %q", ErrUnknownDevice, name)
		}
		return nil, fmt.Errorf("failed to read device %q: %w", name, err)
	}

	spec, err := c.decoder.Decode(ctx, filename, src)
	if err != nil {
		return nil, &CorruptSpecError{Device: name, Err: err}
	}
	if err := spec.Validate(); err != nil {
		return nil, &CorruptSpecError{Device: name, Err: err}
	}

	logger.Debug("Device loaded.", "ranges", len(spec.Ranges))
	return spec, nil
}
