package errors

import (
	"errors"
	"testing"
)

// Test codes for testing
var (
	testCode    = MustNewCode("test.code")
	missingCode = MustNewCode("fs.not_found")
)

func TestNew(t *testing.T) {
	err := New(CommonInternal, "test error")

	if err.Message != "test error" {
		t.Errorf("Expected message 'test error', got '%s'", err.Message)
	}

	if err.Code.String() != "common.internal" {
		t.Errorf("Expected code 'common.internal', got '%s'", err.Code.String())
	}

	if err.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}

	if len(err.Stack) == 0 {
		t.Error("Expected stack trace to be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CommonInternal, "test error with %s", "formatting")

	expected := "test error with formatting"
	if err.Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, err.Message)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("original error")
	err := Wrap(testCode, originalErr, "wrapped error")

	if err.Message != "wrapped error" {
		t.Errorf("Expected message 'wrapped error', got '%s'", err.Message)
	}

	if err.Code.String() != "test.code" {
		t.Errorf("Expected code 'test.code', got '%s'", err.Code.String())
	}

	if !errors.Is(err, originalErr) {
		t.Error("Expected wrapped error to unwrap to the original")
	}
}

func TestAddContext(t *testing.T) {
	err := New(missingCode, "no such file or directory").
		AddContext("path", "/foo/bar").
		AddContext("bucket", "foo")

	if err.Context["path"] != "/foo/bar" {
		t.Errorf("Expected context path '/foo/bar', got '%s'", err.Context["path"])
	}

	if err.Context["bucket"] != "foo" {
		t.Errorf("Expected context bucket 'foo', got '%s'", err.Context["bucket"])
	}
}

func TestHasCode(t *testing.T) {
	err := New(missingCode, "no such file or directory")

	if !HasCode(err, missingCode) {
		t.Error("Expected HasCode to match the error's own code")
	}

	if HasCode(err, testCode) {
		t.Error("Expected HasCode to reject a different code")
	}

	if HasCode(errors.New("plain"), missingCode) {
		t.Error("Expected HasCode to reject foreign error types")
	}
}

func TestGetCode(t *testing.T) {
	err := New(testCode, "boom")

	if got := GetCode(err); got != "test.code" {
		t.Errorf("Expected 'test.code', got '%s'", got)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("Expected empty code for foreign error, got '%s'", got)
	}
}
