package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataPath_Default(t *testing.T) {
	t.Setenv("SCICALC_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := DataPath()
	want := filepath.Join(home, ".scicalc")
	if got != want {
		t.Errorf("DataPath() = %q, want %q", got, want)
	}
}

func TestDataPath_EnvOverride(t *testing.T) {
	t.Setenv("SCICALC_PATH", "/tmp/custom-scicalc")

	got := DataPath()
	want := "/tmp/custom-scicalc"
	if got != want {
		t.Errorf("DataPath() = %q, want %q", got, want)
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("SCICALC_PATH", "/tmp/test-scicalc")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigPath(), "/tmp/test-scicalc/config.jsonc"},
		{"dotenv", DotenvPath(), "/tmp/test-scicalc/.env"},
		{"keymap", KeymapPath(), "/tmp/test-scicalc/keys.yaml"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
