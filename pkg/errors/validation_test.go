package errors

import (
	"math"
	"testing"
)

func TestValidateFigureID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f2c9d1e-8a7b-4c1d-9e2f-0a1b2c3d4e5f", false},
		{"slug", "line_7-weekly", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFigureID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFigureID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateFigureID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "figure.json", false},
		{"valid nested", "charts/line7/figure.toml", false},
		{"valid absolute", "/tmp/out.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf(ErrCodeInvalidBoxMode, "boxmode", "group", "group", "overlay"); err != nil {
		t.Errorf("ValidateOneOf(group) = %v", err)
	}
	err := ValidateOneOf(ErrCodeInvalidBoxMode, "boxmode", "stack", "group", "overlay")
	if !Is(err, ErrCodeInvalidBoxMode) {
		t.Errorf("ValidateOneOf(stack) = %v, want %s", err, ErrCodeInvalidBoxMode)
	}
	if err := ValidateOneOf(ErrCodeInvalidBoxMode, "boxmode", "Group", "group"); err == nil {
		t.Error("ValidateOneOf should be case-sensitive")
	}
}

func TestValidateFraction(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{0, false},
		{0.3, false},
		{0.999, false},
		{1, true},
		{-0.1, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		if err := ValidateFraction("boxgap", tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateFraction(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{0, false},
		{12.5, false},
		{-1, true},
		{math.Inf(1), true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		if err := ValidateNonNegative("width", tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFigure,
		ErrCodeInvalidTrace,
		ErrCodeInvalidOrientation,
		ErrCodeInvalidBoxMode,
		ErrCodeInvalidHoverMode,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFigureNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
