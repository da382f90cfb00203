// Package config loads editor options from a TOML file and supports live
// reload via file watching. A missing config file is not an error; the
// defaults apply until a file appears.
package config
