package flashcard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Moonzhang/go-flashcard/internal/fileutil"
	"github.com/Moonzhang/go-flashcard/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// TemplateInfo describes one renderable deck template.
type TemplateInfo struct {
	File        string `yaml:"file" json:"file"`
	Description string `yaml:"description" json:"description"`
}

// Limits bounds accepted document size. Zero means "no limit" for the
// corresponding field.
type Limits struct {
	MaxCards         int `yaml:"max_cards" json:"max_cards"`
	MaxContentLength int `yaml:"max_content_length" json:"max_content_length"`
	MaxTagsPerCard   int `yaml:"max_tags_per_card" json:"max_tags_per_card"`
	MaxTagLength     int `yaml:"max_tag_length" json:"max_tag_length"`
}

// Config is the process-wide configuration consumed by the normalizer, style
// resolver, and renderer. It is loaded once at startup and must not be
// mutated afterwards; concurrent reads need no synchronization. To reload,
// build a new Config and swap the whole value.
type Config struct {
	// DefaultTemplate is the final fallback of the template resolution chain.
	DefaultTemplate string `yaml:"default_template"`

	// Templates maps template names to files under the asset directory.
	Templates map[string]TemplateInfo `yaml:"templates"`

	// Themes maps theme names to partial style overrides, layered between
	// user style and Defaults during resolution.
	Themes map[string]Style `yaml:"themes"`

	// Defaults is the global default style. Every recognized key is set.
	Defaults Style `yaml:"defaults"`

	Limits Limits `yaml:"limits"`
}

// DefaultConfig returns the built-in configuration: two renderable templates,
// the five stock themes, and the stock validation limits.
func DefaultConfig() *Config {
	return &Config{
		DefaultTemplate: "default",
		Templates: map[string]TemplateInfo{
			"default": {File: "default.html", Description: "Full-featured deck with flip animation and tag filter"},
			"minimal": {File: "minimal.html", Description: "Bare card grid, content only"},
			"print":   {File: "print.html", Description: "Print-optimized pages for PDF export"},
		},
		Themes: map[string]Style{
			"light": {
				Colors: map[string]string{
					"primary":       "#007bff",
					"secondary":     "#6c757d",
					"background":    "#ffffff",
					"text":          "#333333",
					"card_bg":       "#ffffff",
					"card_front_bg": "#ffffff",
					"card_back_bg":  "#f5f5f5",
					"card_border":   "#dddddd",
				},
			},
			"dark": {
				Colors: map[string]string{
					"primary":       "#007bff",
					"secondary":     "#6c757d",
					"background":    "#1a1a1a",
					"text":          "#ffffff",
					"card_bg":       "#2d2d2d",
					"card_front_bg": "#2d2d2d",
					"card_back_bg":  "#3d3d3d",
					"card_border":   "#444444",
				},
				CardBorder: "1px solid #555555",
			},
			// Layout themes select a back-of-card structural variant and
			// inherit the light palette.
			"basic":   {},
			"advance": {ShowCardIndex: boolPtr(true)},
			"detail":  {ShowTags: boolPtr(true), CompactTypography: boolPtr(false)},
		},
		Defaults: Style{
			Template: "minimal",
			Theme:    "light",
			Colors: map[string]string{
				"primary":       "#007bff",
				"secondary":     "#6c757d",
				"background":    "#ffffff",
				"text":          "#333333",
				"card_bg":       "#ffffff",
				"card_front_bg": "#ffffff",
				"card_back_bg":  "#f5f5f5",
				"card_border":   "#dddddd",
			},
			Font:               "Arial, sans-serif",
			CardFrontFont:      "24px/1.2 Arial, sans-serif",
			CardBackFont:       "18px/1.2 Arial, sans-serif",
			CardWidth:          "300px",
			CardHeight:         "200px",
			CardFrontTextAlign: AlignCenter,
			CardBackTextAlign:  AlignCenter,
			CardBorder:         "1px solid #dddddd",
			CardBorderRadius:   "8px",
			CardPadding:        "20px",
			CardBoxShadow:      "0 2px 4px rgba(0,0,0,0.1)",
			ShowDeckName:       boolPtr(false),
			ShowCardIndex:      boolPtr(false),
			ShowTags:           boolPtr(true),
			CompactTypography:  boolPtr(true),
		},
		Limits: Limits{
			MaxCards:         1000,
			MaxContentLength: 10000,
			MaxTagsPerCard:   10,
			MaxTagLength:     50,
		},
	}
}

// AvailableThemes returns the configured theme names, sorted.
func (c *Config) AvailableThemes() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableTemplates returns the configured template names, sorted.
func (c *Config) AvailableTemplates() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks internal consistency of the configuration.
func (c *Config) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("%w: no templates configured", ErrConfigInvalid)
	}
	if _, ok := c.Templates[c.DefaultTemplate]; !ok {
		return fmt.Errorf("%w: default template %q not in templates", ErrConfigInvalid, c.DefaultTemplate)
	}
	if len(c.Themes) == 0 {
		return fmt.Errorf("%w: no themes configured", ErrConfigInvalid)
	}
	if _, ok := c.Themes[c.Defaults.Theme]; !ok {
		return fmt.Errorf("%w: default theme %q not in themes", ErrConfigInvalid, c.Defaults.Theme)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it is treated as a file path.
// Otherwise it is treated as a config name and searched in the current
// directory and the user config directory. Fields absent from the file keep
// their DefaultConfig values, so a file only needs to state overrides.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	if err := yamlutil.UnmarshalStrict(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := mergeConfig(&loaded, DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig fills unset fields of loaded from def and returns the result.
// Maps replace wholesale; the default style merges key by key so an override
// file can change a single default without restating the rest.
func mergeConfig(loaded, def *Config) *Config {
	cfg := *loaded
	if cfg.DefaultTemplate == "" {
		cfg.DefaultTemplate = def.DefaultTemplate
	}
	if cfg.Templates == nil {
		cfg.Templates = def.Templates
	}
	if cfg.Themes == nil {
		cfg.Themes = def.Themes
	}
	cfg.Defaults = overlayStyle(&cfg.Defaults, &def.Defaults)
	if cfg.Limits == (Limits{}) {
		cfg.Limits = def.Limits
	}
	return &cfg
}

// resolveConfigPath searches for a config file by name.
// Tries extensions .yaml then .yml, in the current directory first and the
// user config directory second.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-flashcard", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
