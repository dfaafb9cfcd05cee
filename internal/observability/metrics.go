// Package observability exposes frame-loop metrics over Prometheus.
package observability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameCollector bundles the frame-loop metrics. A nil *FrameCollector is
// valid and records nothing.
type FrameCollector struct {
	gatherer prometheus.Gatherer

	Frames       prometheus.Counter
	FrameDelta   prometheus.Histogram
	Paused       prometheus.Gauge
	Hover        *prometheus.CounterVec
	Commands     *prometheus.CounterVec
	SpeedChanges *prometheus.CounterVec
}

// NewFrameCollector registers frame metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewFrameCollector(reg prometheus.Registerer) (*FrameCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Frames ticked by the driver, paused or not.",
	}))
	if err != nil {
		return nil, err
	}
	delta, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_delta_seconds",
		Help:    "Wall-clock delta handed to each tick.",
		Buckets: []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 0.5, 1},
	}))
	if err != nil {
		return nil, err
	}
	paused, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_paused",
		Help: "1 while the simulation is paused.",
	}))
	if err != nil {
		return nil, err
	}
	hover, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_hover_transitions_total",
		Help: "Hover enter/exit events, labeled by kind and body.",
	}, []string{"kind", "body"}))
	if err != nil {
		return nil, err
	}
	commands, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_commands_total",
		Help: "Control commands applied, labeled by command.",
	}, []string{"command"}))
	if err != nil {
		return nil, err
	}
	speeds, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_speed_changes_total",
		Help: "Speed overrides applied, labeled by body.",
	}, []string{"body"}))
	if err != nil {
		return nil, err
	}

	return &FrameCollector{
		gatherer:     gatherer,
		Frames:       frames,
		FrameDelta:   delta,
		Paused:       paused,
		Hover:        hover,
		Commands:     commands,
		SpeedChanges: speeds,
	}, nil
}

func (c *FrameCollector) ObserveFrame(dt float64, paused bool) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDelta.Observe(dt)
	if paused {
		c.Paused.Set(1)
	} else {
		c.Paused.Set(0)
	}
}

func (c *FrameCollector) ObserveHover(kind, body string) {
	if c == nil {
		return
	}
	c.Hover.WithLabelValues(kind, body).Inc()
}

func (c *FrameCollector) ObserveCommand(name string) {
	if c == nil {
		return
	}
	c.Commands.WithLabelValues(name).Inc()
}

func (c *FrameCollector) ObserveSpeed(body string) {
	if c == nil {
		return
	}
	c.SpeedChanges.WithLabelValues(body).Inc()
}

// Handler serves the collector's gatherer in the Prometheus text format.
func (c *FrameCollector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}
