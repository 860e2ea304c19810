// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ast

import "errors"

// ErrUnexpectedToken is returned when the parser encounters a token that
// cannot start or continue the construct it is currently parsing.
var ErrUnexpectedToken = errors.New("schema: unexpected token")

// ErrStandaloneDocComment is returned when a doc-comment block is not
// immediately followed by a class or constant declaration to attach to.
var ErrStandaloneDocComment = errors.New("schema: standalone doc comment")

// ErrStandaloneDocstring is returned when a docstring appears somewhere
// other than as the first statement of a class body.
var ErrStandaloneDocstring = errors.New("schema: standalone docstring")

// ErrEmptyImportPath is returned when an `import` statement names no path
// segments.
var ErrEmptyImportPath = errors.New("schema: empty import path")
