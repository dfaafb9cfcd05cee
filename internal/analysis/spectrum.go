package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// padFactor oversamples the spectrum so short traces still resolve the peak.
const padFactor = 4

// PowerSpectrum returns the magnitude spectrum of data after removing the
// mean, applying a Hann window and zero padding to a power of two. The second
// result is the padded length, which converts bin k to frequency k/(n*dt).
func PowerSpectrum(data []float64) ([]float64, int) {
	if len(data) == 0 {
		return nil, 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := nextPow2(len(data)) * padFactor
	buf := make([]float64, n)
	last := float64(len(data) - 1)
	for i, v := range data {
		window := 1.0
		if last > 0 {
			window = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/last))
		}
		buf[i] = (v - mean) * window
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, n
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
