package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ConfigFileIsDirectory(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("GRIDMAP_CONFIG_DIR", tmp)

	cfgPath := filepath.Join(tmp, "config.yaml")
	if err := os.Mkdir(cfgPath, 0o755); err != nil {
		t.Fatalf("setup config dir: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatalf("expected read error when config file is a directory")
	} else if os.IsNotExist(err) {
		t.Fatalf("expected non-ENOENT error, got %v", err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("GRIDMAP_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("GRIDMAP_CONFIG_DIR", tmp)

	if err := os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("start_row: 5\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StartRow != 5 {
		t.Fatalf("start_row = %d, want 5", cfg.StartRow)
	}
	if cfg.Output != "result.txt" || cfg.LogLevel != "warn" || cfg.Sheet != 0 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("GRIDMAP_CONFIG_DIR", tmp)

	if err := os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("sheet: [oops\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveLoadDelete(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "nested")
	t.Setenv("GRIDMAP_CONFIG_DIR", tmp)

	want := Config{Sheet: 1, StartRow: 3, Output: "out.txt", LogLevel: "debug"}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Saving twice exercises the replace path.
	if err := Save(want); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.yaml" {
		t.Fatalf("unexpected files after save: %v", entries)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Delete of missing file: %v", err)
	}
	got, err = Load()
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if got != Default() {
		t.Fatalf("got %+v after delete, want defaults", got)
	}
}

func TestPath_XDGFallback(t *testing.T) {
	t.Setenv("GRIDMAP_CONFIG_DIR", "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	p, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if want := filepath.Join(xdg, "gridmap", "config.yaml"); p != want {
		t.Fatalf("got %q, want %q", p, want)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"sheet", "2", false},
		{"sheet", "-1", true},
		{"sheet", "two", true},
		{"start_row", "1", false},
		{"start_row", "0", true},
		{"output", "diff.txt", false},
		{"output", "", true},
		{"log_level", "debug", false},
		{"log_level", "chatty", true},
		{"colour", "red", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if cfg != Default() {
					t.Fatalf("config changed on error: %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != tt.value {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}
