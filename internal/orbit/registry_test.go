package orbit

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultCatalog(), SpeedMax, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestNewRegistryDefaults(t *testing.T) {
	r := newTestRegistry(t)
	if r.Len() != 8 {
		t.Fatalf("expected 8 bodies, got %d", r.Len())
	}
	for _, b := range r.Bodies() {
		if b.Speed != b.BaseSpeed() {
			t.Errorf("%s: expected speed == base speed", b.Name())
		}
		if b.Angle < 0 || b.Angle >= 2*math.Pi {
			t.Errorf("%s: angle %f out of range", b.Name(), b.Angle)
		}
	}
	id, ok := r.Lookup("earth")
	if !ok {
		t.Fatal("expected to find earth")
	}
	if b, _ := r.Get(id); b.Distance != 45 {
		t.Errorf("expected earth at distance 45, got %f", b.Distance)
	}
}

func TestNewRegistryInvalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"empty", nil},
		{"zero distance", []Spec{{Info: Info{Name: "a"}, Radius: 1, Distance: 0}}},
		{"negative radius", []Spec{{Info: Info{Name: "a"}, Radius: -1, Distance: 5}}},
		{"negative speed", []Spec{{Info: Info{Name: "a"}, Radius: 1, Distance: 5, Speed: -1}}},
		{"missing name", []Spec{{Radius: 1, Distance: 5}}},
		{"duplicate", []Spec{
			{Info: Info{Name: "a"}, Radius: 1, Distance: 5},
			{Info: Info{Name: "A"}, Radius: 1, Distance: 6},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.specs, SpeedMax, nil)
			if !errors.Is(err, ErrInvalidBody) {
				t.Errorf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
}

func TestSetSpeedClampsAndKeepsAngle(t *testing.T) {
	r := newTestRegistry(t)
	id, _ := r.Lookup("Mars")
	before, _ := r.Get(id)

	if v, err := r.SetSpeed(id, -1); err != nil || v != 0 {
		t.Errorf("expected 0, got %v (%v)", v, err)
	}
	if v, _ := r.SetSpeed(id, 99); v != SpeedMax {
		t.Errorf("expected %v, got %v", SpeedMax, v)
	}
	after, _ := r.Get(id)
	if after.Angle != before.Angle {
		t.Errorf("angle changed from %f to %f", before.Angle, after.Angle)
	}
	if _, err := r.SetSpeed(ID(42), 1); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestResetRestoresBaseSpeed(t *testing.T) {
	r := newTestRegistry(t)
	for _, b := range r.Bodies() {
		r.SetSpeed(b.ID, 0.1)
	}
	r.Step(DefaultKinematics(), 30)
	r.Reset(rand.New(rand.NewSource(7)))

	for _, b := range r.Bodies() {
		if b.Speed != b.BaseSpeed() {
			t.Errorf("%s: expected base speed %f, got %f", b.Name(), b.BaseSpeed(), b.Speed)
		}
		if b.Angle < 0 || b.Angle >= 2*math.Pi {
			t.Errorf("%s: angle %f out of [0, 2π)", b.Name(), b.Angle)
		}
	}
}

func TestTargetsFollowBodies(t *testing.T) {
	r := newTestRegistry(t)
	r.Step(DefaultKinematics(), 3)
	bodies := r.Bodies()
	for i, tg := range r.Targets() {
		if tg.ID != bodies[i].ID || tg.Center != bodies[i].Position() || tg.Radius != bodies[i].Radius {
			t.Errorf("target %d does not match body %s", i, bodies[i].Name())
		}
	}
}

func TestCatalogSubset(t *testing.T) {
	got := CatalogSubset("Neptune", "Earth", "Pluto")
	if len(got) != 2 || got[0].Name != "Earth" || got[1].Name != "Neptune" {
		t.Errorf("expected [Earth Neptune], got %v", got)
	}
}

func TestPinnedPhase(t *testing.T) {
	specs := CatalogSubset("Earth")
	specs[0].Phase = PhaseAt(2*math.Pi + 0.5)
	r, err := NewRegistry(specs, SpeedMax, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	b, _ := r.Get(0)
	if math.Abs(b.Angle-0.5) > 1e-9 {
		t.Errorf("expected normalized phase 0.5, got %f", b.Angle)
	}

	specs[0].Phase = PhaseAt(math.NaN())
	if _, err := NewRegistry(specs, SpeedMax, nil); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody for NaN phase, got %v", err)
	}
}
