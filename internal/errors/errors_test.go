package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := New(TypeInput, "bad input")
	if got := err.Error(); got != "[INPUT_ERROR] bad input" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(TypeStorage, "upload failed", io.ErrUnexpectedEOF)
	if got := wrapped.Error(); got != "[STORAGE_ERROR] upload failed: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_UnwrapAndIs(t *testing.T) {
	err := Wrap(TypeStorage, "upload failed", io.ErrUnexpectedEOF)
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected cause to be reachable through Unwrap")
	}

	outer := fmt.Errorf("run: %w", NoValidInput())
	if !stderrors.Is(outer, New(TypeNoValidInput, "")) {
		t.Error("expected errors.Is to match on type")
	}
	if stderrors.Is(outer, New(TypeInput, "")) {
		t.Error("errors.Is matched a different type")
	}
}

func TestIsTypeAndTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Type
	}{
		{"domain", Catalog("bad catalog", nil), TypeCatalog},
		{"wrapped", fmt.Errorf("loading: %w", Config("bad config", nil)), TypeConfig},
		{"foreign", io.EOF, TypeInternal},
		{"nil", nil, TypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.want {
				t.Errorf("TypeOf() = %s, want %s", got, tt.want)
			}
			if tt.err != nil && tt.want != TypeInternal && !IsType(tt.err, tt.want) {
				t.Errorf("IsType(%s) = false", tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NotFound("tool", "zoom").WithContext("key", "zoom").WithContext("source", "builtin")
	if len(err.Context) != 2 || err.Context["key"] != "zoom" {
		t.Errorf("unexpected context: %v", err.Context)
	}
}
