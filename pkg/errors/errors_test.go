// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, severity and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/plugboot/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "tool_missing_error",
			code:    errors.ErrToolMissing,
			message: "git not found",
			wantStr: "[TOOL_MISSING] git not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "empty package name",
			wantStr: "[INVALID_INPUT] empty package name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrInstallFailed, "could not install %s package", "tqdm==4.64.0")
	if err.Message != "could not install tqdm==4.64.0 package" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCloneFailed, "clone failed").
		WithDetail("url", "https://example.com/repo.git").
		WithDetail("destination", "/tmp/repo")

	if err.Details["url"] != "https://example.com/repo.git" {
		t.Errorf("WithDetail() url = %v", err.Details["url"])
	}
	if err.Details["destination"] != "/tmp/repo" {
		t.Errorf("WithDetail() destination = %v", err.Details["destination"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrToolMissing, "error 1")
	err2 := errors.New(errors.ErrToolMissing, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should work with *Error")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrVenvCreate, "x"), errors.ErrVenvCreate, true},
		{"different_code", errors.New(errors.ErrVenvCreate, "x"), errors.ErrInternal, false},
		{"wrapped_error", fmt.Errorf("step: %w", errors.New(errors.ErrDirCreate, "x")), errors.ErrDirCreate, true},
		{"plain_error", stderrors.New("standard error"), errors.ErrDirCreate, false},
		{"nil_error", nil, errors.ErrDirCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrCloneFailed, "x")); got != errors.ErrCloneFailed {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want UNKNOWN", got)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"download failure is soft", errors.New(errors.ErrDownloadFailed, "404"), false},
		{"wrapped download failure is soft", fmt.Errorf("artifact: %w", errors.New(errors.ErrDownloadFailed, "404")), false},
		{"download write is fatal", errors.New(errors.ErrDownloadWrite, "disk full"), true},
		{"missing tool is fatal", errors.New(errors.ErrToolMissing, "no git"), true},
		{"clone failure is fatal", errors.New(errors.ErrCloneFailed, "no done"), true},
		{"uncoded error is fatal", stderrors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	dirErr := errors.Wrap(rootCause, errors.ErrDirCreate, "cannot create directory")
	configErr := errors.Wrap(dirErr, errors.ErrConfigLoad, "failed to load config")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}

	var middle *errors.Error
	if stderrors.As(configErr.Unwrap(), &middle) {
		if middle.Code != errors.ErrDirCreate {
			t.Error("Middle error should have ErrDirCreate code")
		}
	} else {
		t.Error("Middle error should be an *errors.Error")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
