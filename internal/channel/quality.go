// Package channel models the physical-layer impairments of the space-ground
// link: a stochastic link-budget SNR and quadratic oscillator drift. Both
// are per-call computations so the channel is time-varying; nothing here is
// cached between calls.
package channel

import (
	"math"
	"math/rand"

	"github.com/BelaBartok39/JIT-FHSS/internal/doppler"
)

// Boltzmann constant, J/K.
const boltzmann = 1.380649e-23

// QualityConfig holds the link-budget parameters.
type QualityConfig struct {
	CarrierFreqHz float64
	TxPowerDBW    float64
	TxGainDBi     float64
	RxGainDBi     float64
	SystemTempK   float64
	BandwidthHz   float64
}

// QualityModel computes the instantaneous SNR of the link. Loss terms scale
// adversely at low elevation via a cosecant path-length multiplier, and each
// call samples fresh stochastic perturbations (cloud margin, scintillation,
// rain events) from the injected random source.
type QualityModel struct {
	cfg QualityConfig
	rng *rand.Rand
}

// NewQualityModel creates a link-quality model. The random source must be
// owned by the caller; seeding it makes every SNR draw reproducible.
func NewQualityModel(cfg QualityConfig, rng *rand.Rand) *QualityModel {
	return &QualityModel{cfg: cfg, rng: rng}
}

// SNR returns the signal-to-noise ratio in dB at the given range and
// elevation:
//
//	SNR = EIRP − FSPL − atmospheric − ionospheric − rain + rxGain − thermalNoise
func (m *QualityModel) SNR(rangeKm, elevationDeg float64) float64 {
	eirp := m.cfg.TxPowerDBW + m.cfg.TxGainDBi

	return eirp -
		m.freeSpacePathLoss(rangeKm) -
		m.atmosphericLoss(elevationDeg) -
		m.ionosphericLoss(elevationDeg) -
		m.rainLoss(elevationDeg) +
		m.cfg.RxGainDBi -
		m.thermalNoiseDBW()
}

// freeSpacePathLoss returns FSPL in dB: 20·log10(4π·d/λ).
func (m *QualityModel) freeSpacePathLoss(rangeKm float64) float64 {
	lambda := doppler.SpeedOfLight / m.cfg.CarrierFreqHz
	return 20 * math.Log10(4*math.Pi*rangeKm*1000.0/lambda)
}

// thermalNoiseDBW returns the noise floor in dBW: 10·log10(k·T·B).
func (m *QualityModel) thermalNoiseDBW() float64 {
	return 10 * math.Log10(boltzmann*m.cfg.SystemTempK*m.cfg.BandwidthHz)
}

// pathMultiplier is the cosecant-style slant-path length factor. Elevation
// is floored at 5 degrees so the multiplier stays bounded near the horizon.
func pathMultiplier(elevationDeg float64) float64 {
	el := elevationDeg
	if el < 5 {
		el = 5
	}
	if el > 90 {
		el = 90
	}
	return 1.0 / math.Sin(el*math.Pi/180.0)
}

// atmosphericLoss is the gaseous zenith absorption scaled by slant path,
// plus a uniformly sampled cloud margin.
func (m *QualityModel) atmosphericLoss(elevationDeg float64) float64 {
	const zenithLossDB = 0.5
	cloudMargin := m.rng.Float64() * 1.5
	return zenithLossDB*pathMultiplier(elevationDeg) + cloudMargin
}

// ionosphericLoss scales with the inverse square of carrier frequency and
// slant path, plus a scintillation sample.
func (m *QualityModel) ionosphericLoss(elevationDeg float64) float64 {
	const refLossDB = 0.3 // at 1 GHz, zenith
	ratio := 1e9 / m.cfg.CarrierFreqHz
	scintillation := math.Abs(m.rng.NormFloat64()) * 0.4
	return refLossDB*ratio*ratio*pathMultiplier(elevationDeg) + scintillation
}

// rainLoss models intermittent rain fade: most calls see none, a fraction
// see an exponentially distributed attenuation over the slant path.
func (m *QualityModel) rainLoss(elevationDeg float64) float64 {
	const rainProbability = 0.08
	if m.rng.Float64() >= rainProbability {
		return 0
	}
	return m.rng.ExpFloat64() * 2.0 * pathMultiplier(elevationDeg)
}
