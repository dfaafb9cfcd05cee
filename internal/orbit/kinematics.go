package orbit

const (
	DefaultOrbitRate    = 0.05
	DefaultSpinRate     = 1.5
	DefaultCentralSpin  = 0.5
	DefaultBackdropRate = 0.005
)

// Kinematics advances phases and spins. It holds only rates, so Step is a
// pure function of the body and dt.
type Kinematics struct {
	OrbitRate    float64
	SpinRate     float64
	CentralSpin  float64
	BackdropRate float64
}

func DefaultKinematics() Kinematics {
	return Kinematics{
		OrbitRate:    DefaultOrbitRate,
		SpinRate:     DefaultSpinRate,
		CentralSpin:  DefaultCentralSpin,
		BackdropRate: DefaultBackdropRate,
	}
}

// Step returns b advanced by dt seconds. Negative dt is treated as zero.
func (k Kinematics) Step(b Body, dt float64) Body {
	if dt <= 0 {
		return b
	}
	b.Angle = NormalizeAngle(b.Angle + dt*b.Speed*k.OrbitRate)
	b.Spin = NormalizeAngle(b.Spin + dt*k.SpinRate)
	return b
}

func (k Kinematics) StepCentral(c Central, dt float64) Central {
	if dt > 0 {
		c.Spin = NormalizeAngle(c.Spin + dt*k.CentralSpin)
	}
	return c
}

// StepBackdrop advances the star-field rotation.
func (k Kinematics) StepBackdrop(rot, dt float64) float64 {
	if dt <= 0 {
		return rot
	}
	return NormalizeAngle(rot + dt*k.BackdropRate)
}
