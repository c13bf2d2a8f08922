package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zachkp/portfolio/content"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PORTFOLIO_DB", "")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	resume, ok := cfg.Assets["resume"]
	if !ok {
		t.Fatal("default resume asset missing")
	}
	if _, ok := resume.Ref.(content.LocalPath); !ok {
		t.Errorf("resume ref = %T, want content.LocalPath", resume.Ref)
	}
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
database_path: stats.db
assets:
  resume:
    label: CV
    source: https://bucket.example.com/cv.pdf
    file_name: cv.pdf
    mime: application/pdf
    kind: download
  podcast:
    source: media/episode1.mp3
    kind: audio
chart:
  x_label: Area
  y_label: Count
  default_persona: project-manager
`)
	t.Setenv("PORT", "7070")
	t.Setenv("PORTFOLIO_DB", "")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want env override 7070", cfg.Port)
	}
	if cfg.DatabasePath != "stats.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if ref, ok := cfg.Assets["resume"].Ref.(content.RemoteURL); !ok || string(ref) != "https://bucket.example.com/cv.pdf" {
		t.Errorf("resume ref = %#v", cfg.Assets["resume"].Ref)
	}
	podcast := cfg.Assets["podcast"]
	if podcast == nil {
		t.Fatal("podcast asset missing")
	}
	if podcast.Label != "podcast" || podcast.MIME != "application/octet-stream" {
		t.Errorf("podcast defaults = %+v", podcast)
	}
	if cfg.Chart.XLabel != "Area" || cfg.Chart.DefaultPersona != "project-manager" {
		t.Errorf("chart config = %+v", cfg.Chart)
	}
	if len(cfg.Assets) != 2 {
		t.Errorf("assets = %d entries, want only the 2 from the file", len(cfg.Assets))
	}
	if _, ok := cfg.Assets["headshot"]; ok {
		t.Error("default headshot should be dropped when the file lists its own assets")
	}
}

func TestLoadConfig_FileWithoutAssetsKeepsDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "port: \"9100\"\n"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Assets) != len(defaultConfig().Assets) {
		t.Errorf("assets = %d entries, want the %d defaults", len(cfg.Assets), len(defaultConfig().Assets))
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown kind", "assets:\n  x:\n    source: a.bin\n    kind: hologram\n", ErrUnknownKind},
		{"no source", "assets:\n  x:\n    label: nothing\n", ErrNoAssetSource},
		{"unknown persona", "chart:\n  default_persona: astronaut\n", ErrUnknownPersona},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	if _, err := loadConfig(writeConfig(t, "port: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAssetNamesSortedByKind(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.resolveAssets(); err != nil {
		t.Fatal(err)
	}
	got := cfg.assetNames(KindDownload)
	if len(got) != 2 || got[0] != "job-seeker-code" || got[1] != "resume" {
		t.Errorf("download assets = %v", got)
	}
}
