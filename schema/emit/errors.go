// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package emit

import "errors"

// ErrUnsupportedType is returned when a resolved schema type has no known
// Go rendering — either a constructor/primitive combination the codec
// kernel has no Define* counterpart for, or a field position (e.g. a Vector
// of dynamic objects) the SSZ wire format itself doesn't define.
var ErrUnsupportedType = errors.New("emit: unsupported field type")

// ErrUnknownPackaging is returned for a packaging strategy name other than
// "nested", "flat" or "single".
var ErrUnknownPackaging = errors.New("emit: unknown packaging strategy")
