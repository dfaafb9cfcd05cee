package analysis

import (
	"errors"
	"math"
)

var (
	ErrTooShort = errors.New("trace too short")
	ErrNoPeriod = errors.New("no periodic component")
)

const minSamples = 8

// EstimatePeriod returns the dominant period in seconds of samples taken every
// dt seconds. The spectral peak is refined by parabolic interpolation.
func EstimatePeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < minSamples || dt <= 0 {
		return 0, ErrTooShort
	}

	ps, n := PowerSpectrum(samples)

	peak := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak == 0 || ps[peak] < 1e-12 {
		return 0, ErrNoPeriod
	}

	k := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			k += 0.5 * (a - c) / denom
		}
	}
	return float64(n) * dt / k, nil
}

// AnalyticPeriod is 2*pi/(speed*rate). Stopped bodies never repeat.
func AnalyticPeriod(speed, rate float64) float64 {
	if speed <= 0 || rate <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / (speed * rate)
}

// Crossings records the interpolated times at which xs rises through
// threshold.
func Crossings(xs, times []float64, threshold float64) []float64 {
	n := min(len(xs), len(times))
	var out []float64
	for i := 1; i < n; i++ {
		prev, curr := xs[i-1], xs[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// CrossingPeriod is the mean spacing between consecutive crossings.
func CrossingPeriod(crossings []float64) (float64, error) {
	if len(crossings) < 2 {
		return 0, ErrTooShort
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}
