// Package config holds the game settings: the YAML file, its defaults and the
// speed/difficulty table.
package config

import (
	"os"
	"time"

	"snake-autopilot/game/types"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidGridSize = errors.New("grid size must be one of 10, 20, 30, 40, 50")
	ErrInvalidSpeed    = errors.New("speed must be one of 0, 25, 50, 75, 100")
	ErrNoScoresFile    = errors.New("scores_file must not be empty")
)

const gridSizeRule = "oneof=10 20 30 40 50"

var validate = validator.New()

// GridSizes are the selectable board sizes.
var GridSizes = []int{10, 20, 30, 40, 50}

// Speeds are the selectable speed values, slowest first.
var Speeds = []int{0, 25, 50, 75, 100}

var difficulties = map[int]string{
	0:   "Very Easy",
	25:  "Easy",
	50:  "Medium",
	75:  "Hard",
	100: "Inhuman",
}

const (
	DefaultGridSize   = 30
	DefaultSpeed      = 25
	DefaultScoresFile = "data/scores.json"
)

type Config struct {
	GridSize    int             `yaml:"grid_size" validate:"oneof=10 20 30 40 50"`
	Algorithm   types.Algorithm `yaml:"algorithm"`
	Speed       int             `yaml:"speed" validate:"oneof=0 25 50 75 100"`
	Autopilot   bool            `yaml:"autopilot"`
	ScoresFile  string          `yaml:"scores_file" validate:"required"`
	LogLevel    string          `yaml:"log_level"`
	LogFormat   string          `yaml:"log_format"`
	Seed        uint64          `yaml:"seed"`
	MetricsAddr string          `yaml:"metrics_addr"`
}

func Default() Config {
	return Config{
		GridSize:   DefaultGridSize,
		Algorithm:  types.BreadthFirst,
		Speed:      DefaultSpeed,
		ScoresFile: DefaultScoresFile,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the tagged fields and maps the first failure to its sentinel.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return errors.Wrap(err, "validate config")
	}
	fe := fields[0]
	switch fe.Field() {
	case "GridSize":
		return errors.Wrapf(ErrInvalidGridSize, "got %v", fe.Value())
	case "Speed":
		return errors.Wrapf(ErrInvalidSpeed, "got %v", fe.Value())
	case "ScoresFile":
		return ErrNoScoresFile
	}
	return errors.Wrapf(err, "validate config")
}

func ValidGridSize(n int) bool {
	return validate.Var(n, gridSizeRule) == nil
}

// Difficulty returns the label shown for a speed value, or "" for values off the table.
func Difficulty(speed int) string {
	return difficulties[speed]
}

// TickInterval is the time between ticks at the given speed, never less than 1ms.
func TickInterval(speed int) time.Duration {
	ms := 100 - speed
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Step moves through a list of allowed values, clamping at both ends. Values not in the
// list snap to the first entry.
func Step(values []int, current, delta int) int {
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}
