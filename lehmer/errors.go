// Copyright (C) 2024 Big Lehmer Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package lehmer

import "fmt"

// Code identifies the kind of failure an Error carries.
type Code int

const (
	_ Code = iota
	// CodeValidationDuplicateNumber means the input permutation contained
	// a repeated value.
	CodeValidationDuplicateNumber
	// CodeValidationOutOfRange means the input contained a value >= N.
	CodeValidationOutOfRange
	// CodeSequenceTooLong means the input length exceeds 2^32-1.
	CodeSequenceTooLong
	// CodeDecode means numeric decoding detected an inconsistency: a
	// residual nonzero dividend, or a remainder out of range for its
	// divisor.
	CodeDecode
)

// Error is the single error type returned across the codec's boundary.
// Validation errors carry the offending Index and Value; Index is -1 and
// Value is 0 when not applicable.
type Error struct {
	Code  Code
	Index int
	Value uint32
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeValidationDuplicateNumber:
		return fmt.Sprintf("lehmer: duplicate value %d at index %d", e.Value, e.Index)
	case CodeValidationOutOfRange:
		return fmt.Sprintf("lehmer: value %d at index %d is out of range", e.Value, e.Index)
	case CodeSequenceTooLong:
		return "lehmer: permutation length exceeds 2^32-1"
	case CodeDecode:
		return "lehmer: code does not decode to a valid permutation"
	default:
		return "lehmer: unknown error"
	}
}

// Is reports whether target carries the same Code, so callers can use
// errors.Is(err, lehmer.ErrDecode) without matching on Index/Value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for use with errors.Is. Their Index and Value fields are
// not meaningful; inspect the returned error's fields directly for those.
var (
	ErrValidationDuplicateNumber = &Error{Code: CodeValidationDuplicateNumber, Index: -1}
	ErrValidationOutOfRange      = &Error{Code: CodeValidationOutOfRange, Index: -1}
	ErrSequenceTooLong           = &Error{Code: CodeSequenceTooLong, Index: -1}
	ErrDecode                    = &Error{Code: CodeDecode, Index: -1}
)
