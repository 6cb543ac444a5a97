package x11

import (
	"os"
	"testing"
)

func TestParseWMClass(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "Standard format",
			input:    []byte("Navigator\x00Firefox\x00"),
			expected: "Firefox",
		},
		{
			name:     "Same instance and class",
			input:    []byte("kitty\x00kitty\x00"),
			expected: "kitty",
		},
		{
			name:     "Instance only",
			input:    []byte("xterm\x00"),
			expected: "xterm",
		},
		{
			name:     "Missing trailing NUL",
			input:    []byte("emacs\x00Emacs"),
			expected: "Emacs",
		},
		{
			name:     "Empty class falls back to instance",
			input:    []byte("st\x00\x00"),
			expected: "st",
		},
		{
			name:     "Empty",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseWMClass(tt.input)
			if result != tt.expected {
				t.Errorf("parseWMClass(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewResolver(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("X11 display not available on this system")
	}

	resolver, err := NewResolver()
	if err != nil {
		t.Logf("NewResolver() error (may be expected): %v", err)
		return
	}
	defer resolver.Close()

	class, err := resolver.Class(0)
	t.Logf("Class of root placeholder: %q, err: %v", class, err)
}
