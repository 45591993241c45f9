package parser

import (
	"fmt"

	"github.com/molviz-labs/molsel/pkg/token"
)

// ParseError represents a syntax error with position information.
// A failed parse never yields a partial AST; callers get this error and
// leave their prior selection state untouched.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken = "unexpected %q, expected %s"
	ErrExpectedValue   = "expected a value after %s"
	ErrExpectedInteger = "expected an integer, got %q"
	ErrExpectedRadius  = "expected a non-negative radius after %s"
	ErrTrailingInput   = "unexpected trailing input starting at %q"
	ErrEmptyInput      = "empty selection expression"
)
