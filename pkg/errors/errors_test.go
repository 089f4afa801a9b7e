package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidBoxMode, "unknown boxmode: %s", "stack"), "INVALID_BOXMODE: unknown boxmode: stack"},
		{"wrap", Wrap(ErrCodeInvalidFigure, errors.New("unexpected EOF"), "decode %s", "plot.json"), "INVALID_FIGURE: decode plot.json: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "connect to mongo")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want the cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
}

func TestCodeLookup(t *testing.T) {
	nested := Wrap(ErrCodeTimeout, New(ErrCodeInvalidInput, "inner"), "render")
	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"matching", New(ErrCodeInvalidHoverMode, "bad"), ErrCodeInvalidHoverMode, true, ErrCodeInvalidHoverMode},
		{"other code", New(ErrCodeInvalidHoverMode, "bad"), ErrCodeNetwork, false, ErrCodeInvalidHoverMode},
		{"outermost wins", nested, ErrCodeTimeout, true, ErrCodeTimeout},
		{"inner hidden", nested, ErrCodeInvalidInput, false, ErrCodeTimeout},
		{"plain", errors.New("plain"), ErrCodeInternal, false, ""},
		{"nil", nil, ErrCodeInternal, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Wrap(ErrCodeFileNotFound, errors.New("stat"), "figure plot.toml")); got != "figure plot.toml" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", New(ErrCodeInvalidOrientation, "bad"), http.StatusBadRequest},
		{"format", New(ErrCodeInvalidFormat, "pdf"), http.StatusBadRequest},
		{"figure missing", New(ErrCodeFigureNotFound, "gone"), http.StatusNotFound},
		{"file missing", New(ErrCodeFileNotFound, "gone"), http.StatusNotFound},
		{"timeout", Wrap(ErrCodeTimeout, errors.New("slow"), "render"), http.StatusGatewayTimeout},
		{"unsupported", New(ErrCodeUnsupported, "nope"), http.StatusNotImplemented},
		{"network", New(ErrCodeNetwork, "down"), http.StatusInternalServerError},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
