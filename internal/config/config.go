package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"scrollstage/internal/controller"
	"scrollstage/internal/domain"
	"scrollstage/internal/eventbus"
)

// FileName is the config file looked up in the working directory
const FileName = ".scrollstage.toml"

// Section kinds
const (
	KindScroll = "scroll"
	KindDrag   = "drag"
)

var (
	ErrNoSections       = errors.New("config has no sections")
	ErrEmptySection     = errors.New("section has no items")
	ErrUnknownKind      = errors.New("unknown section kind")
	ErrUnknownTheme     = errors.New("unknown theme")
	ErrDuplicateSection = errors.New("duplicate section name")
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	Theme      string     `toml:"theme"` // auto, light or dark
	LogLevel   string     `toml:"log_level"`
	LogFile    string     `toml:"log_file"`
	Input      Input      `toml:"input"`
	UISettings UISettings `toml:"ui"`
	Sections   []Section  `toml:"sections"`
}

// Input maps terminal cells and wheel notches onto pixels
type Input struct {
	FrameIntervalMS int     `toml:"frame_interval_ms"`
	WheelStepPx     float64 `toml:"wheel_step_px"`
	CellWidthPx     float64 `toml:"cell_width_px"`
	CellHeightPx    float64 `toml:"cell_height_px"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelpBar    bool `toml:"show_help_bar"`
	AutosaveOnExit bool `toml:"autosave_on_exit"`
}

// Section describes one controller instance and its items
type Section struct {
	Name          string           `toml:"name"`
	Kind          string           `toml:"kind"`
	Effect        string           `toml:"effect"`
	Circular      bool             `toml:"circular,omitempty"`
	AutoplayMS    int              `toml:"autoplay_ms,omitempty"`
	ThresholdPx   float64          `toml:"threshold_px,omitempty"`
	ScrollPerItem float64          `toml:"scroll_per_item_px,omitempty"`
	Items         []domain.Payload `toml:"items"`
}

// Overrides are environment variables applied on top of the file
type Overrides struct {
	Theme       string  `env:"SCROLLSTAGE_THEME"`
	LogLevel    string  `env:"SCROLLSTAGE_LOG_LEVEL"`
	LogFile     string  `env:"SCROLLSTAGE_LOG_FILE"`
	WheelStepPx float64 `env:"SCROLLSTAGE_WHEEL_STEP_PX"`
	CellWidthPx float64 `env:"SCROLLSTAGE_CELL_WIDTH_PX"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the file in dir
func NewConfigService(dir string) ConfigService {
	if dir == "" {
		dir = "."
	}
	return &configService{filePath: filepath.Join(dir, FileName)}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	return &configService{filePath: path, bus: bus}
}

// Path returns the file the service reads and writes
func Path(cs ConfigService) string {
	if s, ok := cs.(*configService); ok {
		return s.filePath
	}
	return ""
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist. Environment overrides are applied either way.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Sections: len(cfg.Sections),
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Sections = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = DefaultConfig().Sections
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overlays SCROLLSTAGE_* variables onto cfg
func ApplyEnv(cfg *Config) error {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	if o.WheelStepPx > 0 {
		cfg.Input.WheelStepPx = o.WheelStepPx
	}
	if o.CellWidthPx > 0 {
		cfg.Input.CellWidthPx = o.CellWidthPx
	}
	return cfg.Validate()
}

// Validate rejects configs no controller could mount
func (c *Config) Validate() error {
	switch c.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}
	if len(c.Sections) == 0 {
		return ErrNoSections
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if seen[s.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateSection, s.Name)
		}
		seen[s.Name] = true
		if len(s.Items) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptySection, s.Name)
		}
		if s.Kind != KindScroll && s.Kind != KindDrag {
			return fmt.Errorf("%w: %q in section %s", ErrUnknownKind, s.Kind, s.Name)
		}
		if err := s.Options().Validate(); err != nil {
			return fmt.Errorf("section %s: %w", s.Name, err)
		}
	}
	return nil
}

// FrameInterval is how often queued scroll samples are applied
func (c *Config) FrameInterval() time.Duration {
	if c.Input.FrameIntervalMS <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.Input.FrameIntervalMS) * time.Millisecond
}

// Section returns the named section
func (c *Config) Section(name string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Options converts the section into controller parameters
func (s Section) Options() controller.Options {
	return controller.Options{
		Name:           s.Name,
		Circular:       s.Circular,
		HasSubProgress: s.Kind == KindScroll,
		Draggable:      s.Kind == KindDrag,
		Effect:         domain.Effect(s.Effect),
		Autoplay:       time.Duration(s.AutoplayMS) * time.Millisecond,
		Threshold:      s.ThresholdPx,
	}
}

// ScrollRange is the scroll distance a scroll-driven section spans
func (s Section) ScrollRange() float64 {
	per := s.ScrollPerItem
	if per <= 0 {
		per = 400
	}
	return per * float64(len(s.Items))
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Theme:    "auto",
		LogLevel: "info",
		LogFile:  "scrollstage.log",
		Input: Input{
			FrameIntervalMS: 16,
			WheelStepPx:     40,
			CellWidthPx:     8,
			CellHeightPx:    16,
		},
		UISettings: UISettings{
			ShowHelpBar:    true,
			AutosaveOnExit: true,
		},
		Sections: []Section{
			{
				Name:       "hero",
				Kind:       KindDrag,
				Effect:     string(domain.EffectFade),
				Circular:   true,
				AutoplayMS: 3000,
				Items: []domain.Payload{
					{Title: "Harbor Lights", Label: "Harbor Lights", Category: "Brand identity", ColorLight: "#16a34a", ColorDark: "#4ade80"},
					{Title: "Northwind", Label: "Northwind", Category: "Web platform", ColorLight: "#0891b2", ColorDark: "#22d3ee"},
					{Title: "Atelier Sol", Label: "Atelier Sol", Category: "E-commerce", ColorLight: "#d97706", ColorDark: "#fbbf24"},
					{Title: "Field Notes", Label: "Field Notes", Category: "Editorial design", ColorLight: "#7c3aed", ColorDark: "#a78bfa"},
				},
			},
			{
				Name:   "process",
				Kind:   KindScroll,
				Effect: string(domain.EffectZoom),
				Items: []domain.Payload{
					{Number: "01", Title: "Discover", Description: "We listen first and map goals, audience and constraints.", ColorLight: "#0e7490", ColorDark: "#67e8f9", BgLight: "#ecfeff", BgDark: "#083344"},
					{Number: "02", Title: "Design", Description: "Wireframes become a visual system tested with real content.", ColorLight: "#15803d", ColorDark: "#86efac", BgLight: "#f0fdf4", BgDark: "#052e16"},
					{Number: "03", Title: "Build", Description: "Fast, accessible pages shipped in small reviewed increments.", ColorLight: "#b45309", ColorDark: "#fcd34d", BgLight: "#fffbeb", BgDark: "#451a03"},
					{Number: "04", Title: "Launch", Description: "We measure, tune and hand over a site your team can run.", ColorLight: "#6d28d9", ColorDark: "#c4b5fd", BgLight: "#f5f3ff", BgDark: "#2e1065"},
				},
			},
			{
				Name:   "services",
				Kind:   KindDrag,
				Effect: string(domain.EffectSlide),
				Items: []domain.Payload{
					{Title: "Web design", Label: "Design", Description: "Interfaces with a clear hierarchy and a voice of their own."},
					{Title: "Development", Label: "Code", Description: "Static-first sites and apps that load in a blink."},
					{Title: "Branding", Label: "Identity", Description: "Logos, palettes and type that hold together everywhere."},
				},
			},
		},
	}
}
