// Package file provides TOML-backed configuration loading and saving.
//
// The on-disk format mirrors the domain Config sections ([fetch],
// [embedding], [extract], [visualization]); a missing file yields the
// documented defaults, and range validation is handled separately by
// domain.ValidateConfig so corrections can be reported to the user.
package file
