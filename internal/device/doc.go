// Package device holds the format-agnostic description of a transimpedance
// front-end: its loop delay, the pole-zero spread it tolerates, the series
// offset resistance and the named feedback ranges. Values are produced by a
// format-specific decoder (see the hcl package) and are read-only afterwards.
package device
