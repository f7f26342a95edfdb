package errors

import (
	"strings"
	"testing"
)

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "lena.tif", false},
		{"absolute", "/tmp/images/target.png", false},
		{"empty", "", true},
		{"null byte", "a\x00.png", true},
		{"control char", "a\n.png", true},
		{"directory", "images/", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateShapeName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"rectangle", false},
		{"triangle", false},
		{"circle", true},
		{"Rectangle", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateShapeName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateShapeName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateNumbers(t *testing.T) {
	if err := ValidatePositive("candidates", 1); err != nil {
		t.Errorf("ValidatePositive(1) = %v", err)
	}
	if err := ValidatePositive("candidates", 0); !Is(err, ErrCodeConfig) {
		t.Errorf("ValidatePositive(0) = %v, want CONFIG_ERROR", err)
	}
	if err := ValidateNonNegative("generations", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) = %v", err)
	}
	if err := ValidateNonNegative("generations", -1); err == nil {
		t.Error("ValidateNonNegative(-1) should fail")
	}
	if err := ValidateRange("scale", 0.5, 2); err != nil {
		t.Errorf("ValidateRange = %v", err)
	}
	if err := ValidateRange("scale", 2, 2); err == nil {
		t.Error("empty range should fail")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput, ErrCodeInvalidShape, ErrCodeInvalidPath,
		ErrCodeDecode, ErrCodeRender, ErrCodeIO, ErrCodeConfig,
		ErrCodeInternal,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %q", c)
		}
		seen[c] = true
	}
}
