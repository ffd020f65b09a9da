// Package config holds the run configuration: where images are read from,
// how reports are named and drawn, and how classification runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Decoder names.
const (
	DecoderStdlib = "stdlib"
	DecoderOpenCV = "opencv"
)

// Palette holds the report colors as hex strings.
type Palette struct {
	Pink       string `toml:"pink"`
	MidPurple  string `toml:"mid_purple"`
	DarkPurple string `toml:"dark_purple"`
	Green      string `toml:"green"`
}

// Font selects the TrueType faces used for the report caption. Empty paths
// fall back to the embedded Go fonts.
type Font struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
	MinSize int    `toml:"min_size"`
}

type Config struct {
	InputDir     string   `toml:"input_dir"`
	OutputPrefix string   `toml:"output_prefix"`
	Extensions   []string `toml:"extensions"`
	// ExcludePrefixes are file name prefixes never offered for analysis in
	// addition to OutputPrefix.
	ExcludePrefixes []string `toml:"exclude_prefixes"`

	Palette     Palette `toml:"palette"`
	Font        Font    `toml:"font"`
	Border      int     `toml:"border"`
	PanelHeight int     `toml:"panel_height"`
	MinWidth    int     `toml:"min_width"`

	Profile   string  `toml:"profile"`
	Tolerance float64 `toml:"tolerance"`
	Workers   int     `toml:"workers"`
	Decoder   string  `toml:"decoder"`

	LogLevel string `toml:"log_level"`
	// Timings records per-stage durations and logs their averages when the
	// session ends.
	Timings bool `toml:"timings"`
	Display bool `toml:"display"`
	Dialog  bool `toml:"dialog"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		InputDir:        ".",
		OutputPrefix:    "Areaanalys_",
		Extensions:      []string{".png", ".jpg", ".jpeg"},
		ExcludePrefixes: []string{"KONTROLL_"},
		Palette: Palette{
			Pink:       "#DE4D83",
			MidPurple:  "#A72FA3",
			DarkPurple: "#54176F",
			Green:      "#228B22",
		},
		Font:        Font{MinSize: 16},
		Border:      10,
		PanelHeight: 280,
		MinWidth:    900,
		Profile:     "threshold",
		Tolerance:   20,
		Workers:     0,
		Decoder:     DecoderStdlib,
		LogLevel:    "info",
		Timings:     true,
	}
}

// Load reads a TOML file on top of Default. A missing file is an error;
// an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file: %w", err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and normalises extensions to ".ext" form.
func (c *Config) Validate() error {
	var errs []error

	if c.InputDir == "" {
		errs = append(errs, errors.New("input_dir must not be empty"))
	}
	if c.OutputPrefix == "" {
		errs = append(errs, errors.New("output_prefix must not be empty"))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("at least one extension is required"))
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	if c.Border < 0 {
		errs = append(errs, fmt.Errorf("border must be >= 0, got %d", c.Border))
	}
	if c.PanelHeight < 0 {
		errs = append(errs, fmt.Errorf("panel_height must be >= 0, got %d", c.PanelHeight))
	}
	if c.Font.MinSize <= 0 {
		errs = append(errs, fmt.Errorf("font.min_size must be > 0, got %d", c.Font.MinSize))
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance must be >= 0, got %g", c.Tolerance))
	}
	switch c.Decoder {
	case DecoderStdlib, DecoderOpenCV:
	default:
		errs = append(errs, fmt.Errorf("decoder must be %q or %q, got %q", DecoderStdlib, DecoderOpenCV, c.Decoder))
	}

	return errors.Join(errs...)
}
