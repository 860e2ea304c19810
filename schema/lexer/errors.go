// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package lexer

import "errors"

// ErrUnterminatedDocstring is returned when a triple-quoted docstring is
// opened but the input ends before its closing `"""`.
var ErrUnterminatedDocstring = errors.New("schema: unterminated docstring")

// ErrInconsistentIndent is returned when an indent's width is not a multiple
// of the unit established by the first indent seen in the stream.
var ErrInconsistentIndent = errors.New("schema: inconsistent indentation")

// ErrMixedIndent is returned when a line's indentation mixes tabs and spaces
// in a way incompatible with the established indentation style.
var ErrMixedIndent = errors.New("schema: mixed tabs and spaces")

// ErrUnmatchedBracket is returned by the tree-izer when a `[`, `(` or Indent
// has no matching close before the input (or enclosing block) ends.
var ErrUnmatchedBracket = errors.New("schema: unmatched bracket")

// ErrUnexpectedCloseBracket is returned when a `]` or `)` appears without a
// matching opener.
var ErrUnexpectedCloseBracket = errors.New("schema: unexpected closing bracket")

// ErrUnknownCharacter is returned when the scanner encounters a byte it
// cannot start a token with.
var ErrUnknownCharacter = errors.New("schema: unknown character")
