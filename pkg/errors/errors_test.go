// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/locfold/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "path_not_found_error",
			code:    errors.ErrPathNotFound,
			message: "resource root does not exist",
			wantStr: "[PATH_NOT_FOUND] resource root does not exist",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
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
	err := errors.Newf(errors.ErrFileMove, "cannot move %s into %s", "strings.xml", "values-ar")
	if err.Message != "cannot move strings.xml into values-ar" {
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
	err := errors.New(errors.ErrDirNotEmpty, "directory not empty").
		WithDetail("path", "/res/values-ar-rSA").
		WithDetail("entries", 2)

	if err.Details["path"] != "/res/values-ar-rSA" {
		t.Errorf("WithDetail() path = %v", err.Details["path"])
	}

	if err.Details["entries"] != 2 {
		t.Errorf("WithDetail() entries = %v", err.Details["entries"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrPathNotFound, "error 1")
	err2 := errors.New(errors.ErrPathNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with LocfoldError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrFileMove, "move failed"),
			code:     errors.ErrFileMove,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrFileMove, "move failed"),
			code:     errors.ErrDirCleanup,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrDirCleanup, "denied"),
			code:     errors.ErrDirCleanup,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrFileMove,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrFileMove,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsPrecondition(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"path_not_found", errors.New(errors.ErrPathNotFound, "missing"), true},
		{"not_a_directory", errors.New(errors.ErrNotADirectory, "file"), true},
		{"root_read", errors.Wrap(stderrors.New("io"), errors.ErrRootRead, "read"), true},
		{"file_move", errors.New(errors.ErrFileMove, "move"), false},
		{"cleanup", errors.New(errors.ErrDirCleanup, "rmdir"), false},
		{"standard_error", stderrors.New("plain"), false},
		{"nil_error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsPrecondition(tt.err); got != tt.expected {
				t.Errorf("IsPrecondition() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "locfold_error",
			err:      errors.New(errors.ErrNotADirectory, "not a directory"),
			expected: errors.ErrNotADirectory,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileRead, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var lfErr *errors.LocfoldError
		if stderrors.As(configErr.Unwrap(), &lfErr) {
			if !errors.IsErrorCode(lfErr, errors.ErrFileRead) {
				t.Error("Middle error should have ErrFileRead code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})

	t.Run("details_are_reachable", func(t *testing.T) {
		err := errors.Wrap(rootCause, errors.ErrRootRead, "cannot read root").
			WithDetail("path", "/res")
		if errors.GetErrorDetails(err)["path"] != "/res" {
			t.Error("GetErrorDetails should expose details")
		}
	})
}
