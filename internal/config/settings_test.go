package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/snake/internal/grid"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, Settings)
	}{
		{
			name: "full config",
			yamlContent: `
grid:
  width: 40
  height: 30
  cellSize: 10
tickRate: 15
boundary: bounded
seed: 99
log:
  file: /tmp/snake-test.log
  level: debug
ssh:
  port: "2323"
`,
			validate: func(t *testing.T, s Settings) {
				if s.Grid.Width != 40 || s.Grid.Height != 30 || s.Grid.CellSize != 10 {
					t.Errorf("grid = %+v, want 40x30 cells of 10", s.Grid)
				}
				if s.BoundaryMode() != grid.Bounded {
					t.Errorf("boundary = %v, want bounded", s.BoundaryMode())
				}
				if s.RandSeed() != 99 {
					t.Errorf("seed = %d, want 99", s.RandSeed())
				}
				if s.SSH.Port != "2323" {
					t.Errorf("ssh port = %q, want 2323", s.SSH.Port)
				}
				if s.SSH.Host != DefaultSSHHost {
					t.Errorf("ssh host = %q, want default %q", s.SSH.Host, DefaultSSHHost)
				}
			},
		},
		{
			name:        "partial config keeps defaults",
			yamlContent: "tickRate: 10\n",
			validate: func(t *testing.T, s Settings) {
				if s.TickInterval() != 100*time.Millisecond {
					t.Errorf("tick interval = %v, want 100ms", s.TickInterval())
				}
				if s.GridModel() != (grid.Grid{Width: 32, Height: 24, CellSize: 20}) {
					t.Errorf("grid = %+v, want defaults", s.GridModel())
				}
			},
		},
		{
			name:        "unknown boundary",
			yamlContent: "boundary: solid\n",
			wantErr:     true,
			errContains: "unknown boundary",
		},
		{
			name:        "tick rate too high",
			yamlContent: "tickRate: 500\n",
			wantErr:     true,
			errContains: "tickRate must be between",
		},
		{
			name:        "single cell grid",
			yamlContent: "grid:\n  width: 1\n  height: 1\n",
			wantErr:     true,
			errContains: "room for the snake",
		},
		{
			name:        "zero cell size",
			yamlContent: "grid:\n  cellSize: 0\n",
			wantErr:     true,
			errContains: "cellSize",
		},
		{
			name:        "malformed yaml",
			yamlContent: "grid: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snake.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatalf("failed to write settings file: %v", err)
			}

			s, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, s)
			}
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TickRate != DefaultTickRate || s.BoundaryMode() != grid.Wrap {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Load(missing) error = %v, want read failure", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SNAKE_BOUNDARY", "bounded")
	t.Setenv("SNAKE_TICK_RATE", "30")
	t.Setenv("SSH_PORT", "2424")

	s, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BoundaryMode() != grid.Bounded {
		t.Errorf("boundary = %v, want bounded", s.BoundaryMode())
	}
	if s.TickRate != 30 {
		t.Errorf("tick rate = %d, want 30", s.TickRate)
	}
	if s.SSH.Port != "2424" {
		t.Errorf("ssh port = %q, want 2424", s.SSH.Port)
	}
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SNAKE_TEST_INT", "twenty")
	if got := GetEnvInt("SNAKE_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt = %d, want fallback 7", got)
	}
}
