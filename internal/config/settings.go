package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/snake/internal/grid"
)

// Defaults match the classic 640x480 board with 20-unit cells.
const (
	DefaultGridWidth  = 32
	DefaultGridHeight = 24
	DefaultCellSize   = 20
	DefaultTickRate   = 20 // Ticks per second
	DefaultLogFile    = "snake.log"
	DefaultSSHHost    = "::"
	DefaultSSHPort    = "2222"
	DefaultHostKey    = ".ssh/snake_host_key"

	maxTickRate = 120
)

// Settings holds every tunable parameter.
type Settings struct {
	Grid     GridSettings `yaml:"grid"`
	TickRate int          `yaml:"tickRate"`
	Boundary string       `yaml:"boundary"` // wrap or bounded
	Seed     int64        `yaml:"seed"`     // 0 picks a time-based seed
	Log      LogSettings  `yaml:"log"`
	SSH      SSHSettings  `yaml:"ssh"`
}

// GridSettings describes the playfield.
type GridSettings struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cellSize"`
}

// LogSettings configures the log file.
type LogSettings struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// SSHSettings configures the SSH host.
type SSHSettings struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"hostKeyPath"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Grid: GridSettings{
			Width:    DefaultGridWidth,
			Height:   DefaultGridHeight,
			CellSize: DefaultCellSize,
		},
		TickRate: DefaultTickRate,
		Boundary: grid.Wrap.String(),
		Log: LogSettings{
			File:  DefaultLogFile,
			Level: "info",
		},
		SSH: SSHSettings{
			Host:        DefaultSSHHost,
			Port:        DefaultSSHPort,
			HostKeyPath: DefaultHostKey,
		},
	}
}

// Load reads settings from a YAML file layered over Default. An empty path
// returns the defaults. Environment overrides are applied last.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// LoadFromEnv loads the file named by SNAKE_CONFIG, if any.
func LoadFromEnv() (Settings, error) {
	return Load(GetEnv("SNAKE_CONFIG", ""))
}

func (s *Settings) applyEnv() {
	s.Boundary = GetEnv("SNAKE_BOUNDARY", s.Boundary)
	s.TickRate = GetEnvInt("SNAKE_TICK_RATE", s.TickRate)
	s.Log.File = GetEnv("SNAKE_LOG_FILE", s.Log.File)
	s.Log.Level = GetEnv("SNAKE_LOG_LEVEL", s.Log.Level)
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", s.SSH.HostKeyPath)
}

// Validate checks that the settings describe a playable game.
func (s Settings) Validate() error {
	if s.Grid.Width < 1 || s.Grid.Height < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", s.Grid.Width, s.Grid.Height)
	}
	if s.Grid.Width*s.Grid.Height < 2 {
		return fmt.Errorf("grid needs room for the snake and its food, got %d cells", s.Grid.Width*s.Grid.Height)
	}
	if s.Grid.CellSize < 1 {
		return fmt.Errorf("grid.cellSize must be >= 1, got %d", s.Grid.CellSize)
	}
	if s.TickRate < 1 || s.TickRate > maxTickRate {
		return fmt.Errorf("tickRate must be between 1 and %d, got %d", maxTickRate, s.TickRate)
	}
	if _, err := grid.ParseBoundary(s.Boundary); err != nil {
		return err
	}
	return nil
}

// GridModel returns the grid the settings describe.
func (s Settings) GridModel() grid.Grid {
	return grid.Grid{
		Width:    s.Grid.Width,
		Height:   s.Grid.Height,
		CellSize: s.Grid.CellSize,
	}
}

// BoundaryMode returns the parsed boundary policy. Settings are validated on
// load, so an unknown name falls back to wrap.
func (s Settings) BoundaryMode() grid.Boundary {
	b, _ := grid.ParseBoundary(s.Boundary)
	return b
}

// TickInterval returns the time between two game ticks.
func (s Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

// RandSeed returns the configured seed or one derived from the clock.
func (s Settings) RandSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
