package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("cat", "42")

	if !IsNotFound(err) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if got := err.Error(); got != "cat 42 not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "query", Message: "unrecognized format"}

	if !IsValidationError(err) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "query") {
		t.Errorf("Error() should mention the field, got %q", err.Error())
	}
}

func TestProcessErrorOutput(t *testing.T) {
	underlying := stderrors.New("exit status 1")
	err := NewProcessError("push catalog", "git push", "rejected: non-fast-forward", underlying)

	msg := err.Error()
	if !strings.Contains(msg, "git push") {
		t.Errorf("Error() should include the command, got %q", msg)
	}
	if !strings.Contains(msg, "non-fast-forward") {
		t.Errorf("Error() should include process output, got %q", msg)
	}
	if !stderrors.Is(err, underlying) {
		t.Error("ProcessError should unwrap to the underlying error")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapIO("read", "catlist.json", nil) != nil {
		t.Error("WrapIO(nil) should return nil")
	}
	if WrapParse("json", "catlist.json", nil) != nil {
		t.Error("WrapParse(nil) should return nil")
	}
	if WrapAPI("gemini", "idea", nil) != nil {
		t.Error("WrapAPI(nil) should return nil")
	}

	underlying := stderrors.New("permission denied")
	err := WrapIO("write", "cats/2026-01.json", underlying)

	var ioErr *IOError
	if !stderrors.As(err, &ioErr) {
		t.Fatal("WrapIO should return an *IOError")
	}
	if ioErr.Path != "cats/2026-01.json" {
		t.Errorf("Path = %q", ioErr.Path)
	}
	if !stderrors.Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}
}
