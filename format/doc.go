// Package format implements the wire formats of spec.md §6: the raw
// little-endian fluence dump, the 2-bit packed medium file, the material
// table record sequence, and the Mie LUT output. None of these formats
// carry their own header or version tag — the caller supplies the
// dimensions on read, the same contract the teacher's config loaders use
// for their input files.
package format

import "errors"

// ErrInvalidInput signals a malformed dimension or a buffer whose size
// doesn't match the expected record count.
var ErrInvalidInput = errors.New("invalid input")
