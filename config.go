// config.go - Site configuration: defaults, optional YAML file, env overrides
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/content"
)

// Asset kinds decide how an asset is served and embedded.
const (
	KindDownload = "download"
	KindAudio    = "audio"
	KindVideo    = "video"
	KindImage    = "image"
)

var (
	ErrNoAssetSource  = errors.New("asset has no source")
	ErrUnknownKind    = errors.New("unknown asset kind")
	ErrUnknownPersona = errors.New("default persona is not defined")
)

// AssetConfig describes one file the site offers. Source is parsed into Ref
// once, when the configuration is loaded.
type AssetConfig struct {
	Label    string `yaml:"label"`
	Source   string `yaml:"source"`
	FileName string `yaml:"file_name"`
	MIME     string `yaml:"mime"`
	Kind     string `yaml:"kind"`

	Ref content.Reference `yaml:"-"`
}

type ChartConfig struct {
	XLabel         string `yaml:"x_label"`
	YLabel         string `yaml:"y_label"`
	DefaultPersona string `yaml:"default_persona"`
}

type Config struct {
	Port         string                  `yaml:"port"`
	DatabasePath string                  `yaml:"database_path"`
	Assets       map[string]*AssetConfig `yaml:"assets"`
	Chart        ChartConfig             `yaml:"chart"`

	AdminUsername string `yaml:"-"`
	AdminPassword string `yaml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		Port:         "8080",
		DatabasePath: "portfolio.db",
		Assets: map[string]*AssetConfig{
			"resume": {
				Label:    "Resume",
				Source:   "Resume.pdf",
				FileName: "Resume.pdf",
				MIME:     "application/pdf",
				Kind:     KindDownload,
			},
			"intro-audio": {
				Label:    "Audio introduction",
				Source:   "Introduction.mp3",
				FileName: "Introduction.mp3",
				MIME:     "audio/mpeg",
				Kind:     KindAudio,
			},
			"explainer-video": {
				Label:    "Video",
				Source:   "Streamlit Highlight of Code and Prompts.mp4",
				FileName: "Streamlit_Highlight_of_Code_and_Prompts.mp4",
				MIME:     "video/mp4",
				Kind:     KindVideo,
			},
			"job-seeker-code": {
				Label:    "Code",
				Source:   "Copy Paste Code.txt",
				FileName: "LinkedIn_Job_Seeker_Tool.txt",
				MIME:     "text/plain",
				Kind:     KindDownload,
			},
			"headshot": {
				Label:    "Headshot",
				Source:   "images/headshot.png",
				FileName: "headshot.png",
				MIME:     "image/png",
				Kind:     KindImage,
			},
		},
		Chart: ChartConfig{
			XLabel:         "Certification Category",
			YLabel:         "Number of Certifications",
			DefaultPersona: "data-analyst",
		},
	}
}

// loadConfig builds the configuration from defaults, the YAML file at path
// (skipped when it does not exist) and environment variables, in that order.
// Scalars in the file override defaults one by one; a non-empty assets
// section replaces the whole default asset list.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// An assets section replaces the default assets instead of merging.
			defaults := cfg.Assets
			cfg.Assets = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			if cfg.Assets == nil {
				cfg.Assets = defaults
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dbPath := os.Getenv("PORTFOLIO_DB"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	if err := cfg.resolveAssets(); err != nil {
		return nil, err
	}
	if _, ok := personaByKey(cfg.Chart.DefaultPersona); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPersona, cfg.Chart.DefaultPersona)
	}
	return cfg, nil
}

// resolveAssets validates every asset and parses its source into a reference.
func (cfg *Config) resolveAssets() error {
	for name, a := range cfg.Assets {
		if a == nil || a.Source == "" {
			return fmt.Errorf("%w: %s", ErrNoAssetSource, name)
		}
		switch a.Kind {
		case "":
			a.Kind = KindDownload
		case KindDownload, KindAudio, KindVideo, KindImage:
		default:
			return fmt.Errorf("%w: %s has kind %q", ErrUnknownKind, name, a.Kind)
		}
		if a.Label == "" {
			a.Label = name
		}
		if a.MIME == "" {
			a.MIME = "application/octet-stream"
		}
		a.Ref = content.ParseReference(a.Source)
	}
	return nil
}

// assetNames returns the configured asset names of the given kind, sorted.
func (cfg *Config) assetNames(kind string) []string {
	var names []string
	for name, a := range cfg.Assets {
		if a.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
