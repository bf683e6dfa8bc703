package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	err := NewParse("PAGE-XML", "doc.xml", "no Page element found")
	want := "failed to parse PAGE-XML at doc.xml: no Page element found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ParseError without a cause should unwrap to ErrInvalidInput")
	}

	noPath := NewParse("points", "", "empty points attribute")
	if noPath.Error() != "failed to parse points: empty points attribute" {
		t.Errorf("Error() = %q", noPath.Error())
	}
}

func TestParseErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("xml: syntax error")
	err := &ParseError{Format: "PAGE-XML", Message: "bad", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("ParseError with a cause should unwrap to it")
	}
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIO("open", "/etc/shadow", cause)
	want := "failed to open /etc/shadow: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("IOError should unwrap to the cause")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("port", "must be positive")
	if err.Error() != "validation failed for port: must be positive" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{Feature: "format", Reason: "unknown schema"}
	if err.Error() != "unsupported format: unknown schema" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}

	base := errors.New("base")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the base")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "page %d", 3) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	base := errors.New("base")
	wrapped := Wrapf(base, "page %d", 3)
	if wrapped.Error() != "page 3: base" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewIO("read", "f", errors.New("eof")))
	var ioErr *IOError
	if !As(err, &ioErr) {
		t.Fatal("As should find the IOError through wrapping")
	}
	if ioErr.Operation != "read" {
		t.Errorf("Operation = %q", ioErr.Operation)
	}
}
