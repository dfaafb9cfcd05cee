package control_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/control"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/orbit"
)

// pointAt returns the normalized pointer coordinates of a world point.
func pointAt(sim *control.Simulation, p geom.Vec3) (float64, float64) {
	x, y, _, ok := sim.Projection().Project(sim.Pose(), p)
	Expect(ok).To(BeTrue())
	return x, y
}

func bodyByName(sim *control.Simulation, name string) orbit.Body {
	id, ok := sim.Lookup(name)
	Expect(ok).To(BeTrue())
	b, _ := sim.Body(id)
	return b
}

var _ = Describe("Simulation", func() {
	var (
		cfg     control.Config
		scene   *recordingScene
		display *recordingDisplay
		sim     *control.Simulation
	)

	BeforeEach(func() {
		cfg = control.DefaultConfig()
		cfg.Bodies = orbit.DefaultCatalog()
		for i := range cfg.Bodies {
			if cfg.Bodies[i].Name == "Earth" {
				cfg.Bodies[i].Phase = orbit.PhaseAt(0)
			}
		}
		scene = newRecordingScene()
		display = &recordingDisplay{}
	})

	JustBeforeEach(func() {
		var err error
		sim, err = control.New(cfg, scene, display)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("initialization", func() {
		It("creates every body plus the central body", func() {
			Expect(scene.created).To(HaveLen(9))
			Expect(scene.created[orbit.CentralID].Central).To(BeTrue())
			Expect(display.controls).To(HaveLen(1))
			Expect(display.controls[0]).To(HaveLen(8))
			Expect(display.paused).To(Equal([]bool{false}))
		})

		It("fails atomically when the scene cannot build a body", func() {
			bad := newRecordingScene()
			bad.failOn = "Mars"
			s, err := control.New(cfg, bad, nil)
			Expect(err).To(MatchError(control.ErrInit))
			Expect(s).To(BeNil())
		})

		It("fails when a body violates its invariants", func() {
			cfg.Bodies[0].Distance = 0
			_, err := control.New(cfg, nil, nil)
			Expect(err).To(MatchError(control.ErrInit))
			Expect(err).To(MatchError(orbit.ErrInvalidBody))
		})
	})

	Describe("ticking", func() {
		It("advances every phase by dt*speed*K", func() {
			before := sim.Bodies()
			sim.Tick(0.5)
			for i, b := range sim.Bodies() {
				want := 0.5 * b.Speed * orbit.DefaultOrbitRate
				Expect(orbit.NormalizeAngle(b.Angle - before[i].Angle)).To(BeNumerically("~", want, 1e-9))
			}
		})

		It("commits positions and renders once per tick", func() {
			sim.Tick(0.1)
			sim.Tick(0.1)
			Expect(scene.renders).To(HaveLen(2))
			earth := bodyByName(sim, "Earth")
			Expect(scene.positions[earth.ID]).To(Equal(earth.Position()))
			Expect(scene.rotations[earth.ID]).To(BeNumerically("~", 0.2*orbit.DefaultSpinRate, 1e-12))
			Expect(scene.backdrop).To(BeNumerically("~", 0.2*orbit.DefaultBackdropRate, 1e-12))
		})

		It("treats negative and NaN deltas as zero", func() {
			before := sim.Bodies()
			sim.Tick(-3)
			sim.Tick(math.NaN())
			Expect(sim.Bodies()).To(Equal(before))
		})

		It("drives the camera with ambient motion", func() {
			sim.Tick(10)
			Expect(sim.CameraMode()).To(Equal(camera.Ambient))
			Expect(sim.Pose().Position.X()).To(BeNumerically("~", math.Cos(0.2)*200, 1e-9))
		})
	})

	Describe("pause", func() {
		It("freezes kinematics, backdrop and camera", func() {
			sim.TogglePause()
			Expect(sim.State()).To(Equal(control.Paused))
			before := sim.Bodies()
			pose := sim.Pose()
			for i := 0; i < 20; i++ {
				sim.Tick(0.25)
			}
			Expect(sim.Bodies()).To(Equal(before))
			Expect(sim.Pose()).To(Equal(pose))
			Expect(sim.Elapsed()).To(BeZero())
			Expect(scene.backdrop).To(BeZero())
		})

		It("is an involution", func() {
			before := sim.State()
			sim.TogglePause()
			sim.TogglePause()
			Expect(sim.State()).To(Equal(before))
			Expect(display.paused).To(Equal([]bool{false, true, false}))
		})
	})

	Describe("speed overrides", func() {
		It("clamps out-of-range values", func() {
			id, _ := sim.Lookup("Mars")
			Expect(sim.SetSpeed(id, -1)).To(Succeed())
			b, _ := sim.Body(id)
			Expect(b.Speed).To(BeZero())

			Expect(sim.SetSpeed(id, 99)).To(Succeed())
			b, _ = sim.Body(id)
			Expect(b.Speed).To(Equal(orbit.SpeedMax))
		})

		It("leaves the phase untouched", func() {
			id, _ := sim.Lookup("Venus")
			before, _ := sim.Body(id)
			Expect(sim.SetSpeed(id, 0.3)).To(Succeed())
			after, _ := sim.Body(id)
			Expect(after.Angle).To(Equal(before.Angle))
		})

		It("rejects unknown bodies", func() {
			Expect(sim.SetSpeed(orbit.ID(99), 1)).To(MatchError(control.ErrUnknownBody))
			Expect(sim.SetSpeedByName("Pluto", 1)).To(MatchError(control.ErrUnknownBody))
		})
	})

	Describe("reset", func() {
		It("restores base speeds, re-randomizes phases and returns the camera", func() {
			for _, b := range sim.Bodies() {
				Expect(sim.SetSpeed(b.ID, 0.1)).To(Succeed())
			}
			sim.Tick(100)
			sim.Reset()

			for _, b := range sim.Bodies() {
				Expect(b.Speed).To(Equal(b.BaseSpeed()))
				Expect(b.Angle).To(And(BeNumerically(">=", 0), BeNumerically("<", 2*math.Pi)))
			}
			Expect(sim.Pose()).To(Equal(camera.DefaultConfig().DefaultPose))
			Expect(sim.CameraMode()).To(Equal(camera.Directed))
			Expect(display.controls).To(HaveLen(2))
		})
	})

	Describe("hover", func() {
		BeforeEach(func() {
			cfg.Bodies = orbit.CatalogSubset("Earth")
			cfg.Bodies[0].Phase = orbit.PhaseAt(0)
		})

		JustBeforeEach(func() {
			sim.TogglePause()
		})

		It("emits one enter for repeated picks of the same body", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.PointerMove(x, y)
			sim.Tick(0.016)
			Expect(display.count("show")).To(Equal(1))
			Expect(display.events).To(Equal([]displayEvent{{"show", "Earth"}}))
			Expect(display.pointer).To(BeTrue())
		})

		It("emits one exit on a miss and clears hover", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.PointerMove(-0.95, 0.95)
			sim.PointerMove(-0.9, 0.9)

			Expect(display.count("hide")).To(Equal(1))
			_, ok := sim.Hovered()
			Expect(ok).To(BeFalse())
			Expect(display.pointer).To(BeFalse())
		})

		It("treats pointers outside the viewport as a miss", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.PointerMove(3, 3)
			_, ok := sim.Hovered()
			Expect(ok).To(BeFalse())
		})

		It("ends hover when the pointer leaves", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.PointerLeave()
			Expect(display.count("hide")).To(Equal(1))
		})

		It("re-resolves hover when the body moves away", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.TogglePause()
			sim.Tick(20)
			Expect(display.count("hide")).To(Equal(1))
		})

		It("frames the hovered body on click", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			Expect(sim.Click()).To(BeTrue())
			Expect(sim.Pose()).To(Equal(geom.Pose{
				Position: geom.Vec3{75, 15, 30},
				Target:   geom.Vec3{45, 0, 0},
			}))
			Expect(sim.CameraMode()).To(Equal(camera.Directed))
		})

		It("ignores clicks without a hover", func() {
			pose := sim.Pose()
			Expect(sim.Click()).To(BeFalse())
			Expect(sim.Pose()).To(Equal(pose))
		})

		It("lets ambient motion overwrite a framed pose on the next running tick", func() {
			x, y := pointAt(sim, geom.Vec3{45, 0, 0})
			sim.PointerMove(x, y)
			sim.Click()
			sim.TogglePause()
			sim.Tick(0.016)
			Expect(sim.CameraMode()).To(Equal(camera.Ambient))
		})

		Context("with HoldDirected", func() {
			BeforeEach(func() {
				cfg.Camera.HoldDirected = true
			})

			It("keeps the framed pose while running", func() {
				x, y := pointAt(sim, geom.Vec3{45, 0, 0})
				sim.PointerMove(x, y)
				sim.Click()
				framed := sim.Pose()
				sim.TogglePause()
				sim.Tick(0.016)
				Expect(sim.Pose()).To(Equal(framed))
			})
		})
	})

	Describe("keys", func() {
		It("maps bindings to commands", func() {
			Expect(sim.KeyPress(control.KeySpace)).To(BeTrue())
			Expect(sim.Paused()).To(BeTrue())

			Expect(sim.KeyPress(control.KeyPanel)).To(BeTrue())
			Expect(display.panel).To(BeTrue())

			Expect(sim.KeyPress(control.KeyTheme)).To(BeTrue())
			Expect(display.light).To(BeTrue())

			before := sim.Pose()
			Expect(sim.KeyPress(control.KeyUp)).To(BeTrue())
			Expect(sim.Pose().Position).To(Equal(before.Position.Add(geom.Vec3{0, 10, 0})))
			Expect(sim.KeyPress(control.KeyLeft)).To(BeTrue())
			Expect(sim.Pose().Position.X()).To(Equal(before.Position.X() - 10))
		})

		It("ignores unknown keys", func() {
			snap := sim.Snapshot()
			Expect(sim.KeyPress("x")).To(BeFalse())
			Expect(sim.Snapshot()).To(Equal(snap))
		})
	})

	Describe("dispatch", func() {
		It("rejects nil commands", func() {
			Expect(sim.Dispatch(nil)).To(MatchError(control.ErrUnknownCommand))
		})

		It("frames a body by id", func() {
			id, _ := sim.Lookup("Earth")
			Expect(sim.Dispatch(control.FrameCommand{Body: id})).To(Succeed())
			Expect(sim.Pose().Target).To(Equal(geom.Vec3{45, 0, 0}))
		})
	})

	Describe("resize", func() {
		It("updates the projection aspect and ignores empty sizes", func() {
			sim.Resize(200, 100)
			Expect(sim.Projection().Aspect).To(Equal(2.0))
			sim.Resize(0, 0)
			Expect(sim.Projection().Aspect).To(Equal(2.0))
		})
	})
})
