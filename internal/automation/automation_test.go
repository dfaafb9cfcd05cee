package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/sim"
)

const demo = `
name: demo
description: pause, tweak mars, resume
steps:
  - at: 0.45
    command: pause
  - at: 0.15
    command: speed
    body: mars
    value: 9
  - at: 0.75
    command: pause
  - at: 0.95
    command: theme
`

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(demo))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if script.Name != "demo" || len(script.Steps) != 4 {
		t.Errorf("unexpected script: %+v", script)
	}
}

func TestParseScriptInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"malformed", "steps: [", ErrInvalidScript},
		{"negative time", "steps:\n  - at: -1\n    command: pause\n", ErrInvalidScript},
		{"speed without body", "steps:\n  - command: speed\n", ErrInvalidScript},
		{"key without key", "steps:\n  - command: key\n", ErrInvalidScript},
		{"unknown command", "steps:\n  - command: warp\n", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.yaml)); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demo), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPlayerOrdersSteps(t *testing.T) {
	script, err := ParseScript([]byte(demo))
	if err != nil {
		t.Fatal(err)
	}
	s, err := control.New(control.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	p := NewPlayer(script, nil)
	if err := p.Apply(0.3, s); err != nil {
		t.Fatal(err)
	}
	id, _ := s.Lookup("Mars")
	mars, _ := s.Body(id)
	if mars.Speed != orbit.SpeedMax {
		t.Errorf("expected clamped speed %v, got %v", orbit.SpeedMax, mars.Speed)
	}
	if s.Paused() {
		t.Error("pause step should not fire before 0.45")
	}

	if err := p.Apply(2, s); err != nil {
		t.Fatal(err)
	}
	if s.Paused() || !s.LightTheme() || !p.Done() {
		t.Errorf("expected resumed light theme, paused=%v light=%v done=%v", s.Paused(), s.LightTheme(), p.Done())
	}
}

func TestPlayerUnknownBody(t *testing.T) {
	script := &Script{Steps: []Step{{Command: "frame", Body: "Pluto"}}}
	s, err := control.New(control.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewPlayer(script, nil).Apply(0, s); !errors.Is(err, control.ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestRunScript(t *testing.T) {
	script, err := ParseScript([]byte(demo))
	if err != nil {
		t.Fatal(err)
	}

	result, err := RunScript(context.Background(), script, control.DefaultConfig(), sim.Config{Frames: 20, Dt: 0.1}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Paused from t=0.45 to t=0.75, so three of twenty frames are frozen.
	if got := result.Final.Elapsed; got < 1.69 || got > 1.71 {
		t.Errorf("expected elapsed ~1.7, got %f", got)
	}
	if !result.Final.LightTheme {
		t.Error("theme step did not fire")
	}
}
