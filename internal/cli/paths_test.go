package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "plot.json", "plot"},
		{"", "dir/plot.toml", "dir/plot"},
		{"out.svg", "plot.json", "out"},
		{"out.png", "plot.json", "out"},
		{"out", "plot.json", "out"},
		{"out.pdf", "plot.json", "out.pdf"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"next to input", "", "plot.toml", "svg", false, "plot.svg"},
		{"explicit single", "chart.svg", "plot.toml", "svg", false, "chart.svg"},
		{"stdout", "-", "plot.toml", "svg", false, "-"},
		{"multiple from base", "chart", "plot.toml", "png", true, "chart.png"},
		{"multiple strips extension", "chart.svg", "plot.toml", "png", true, "chart.png"},
		{"json does not overwrite input", "", "plot.json", "json", false, "plot.render.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
