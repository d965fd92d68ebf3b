// Package hcl provides the concrete HCL implementation of the device file
// format. It is responsible for parsing a bundled device document, reporting
// HCL diagnostics with file positions, and binding the evaluated CTY values
// to a device.Specification.
package hcl
