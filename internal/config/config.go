// Package config defines the YAML scenario schema for simulation runs.
// A scenario fully describes one run: orbit geometry, link budget, pattern
// source and buffers, hop timing, and an optional jam schedule.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the top-level YAML document.
type Scenario struct {
	Name            string  `yaml:"name"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	TickSeconds     float64 `yaml:"tick_seconds"`
	RegenerateEvery int     `yaml:"regenerate_every"`
	Seed            int64   `yaml:"seed"`

	Source SourceConfig `yaml:"source"`
	Buffer BufferConfig `yaml:"buffer"`
	Hop    HopConfig    `yaml:"hop"`
	Orbit  OrbitConfig  `yaml:"orbit"`
	Link   LinkConfig   `yaml:"link"`

	Jam []JamEventConfig `yaml:"jam"`
}

// SourceConfig mirrors the pattern source parameters.
type SourceConfig struct {
	NumChannels    int     `yaml:"num_channels"`
	NumFrequencies int     `yaml:"num_frequencies"`
	BandMinHz      float64 `yaml:"band_min_hz"`
	BandMaxHz      float64 `yaml:"band_max_hz"`
	CacheSize      int     `yaml:"cache_size"`
	JamToggleProb  float64 `yaml:"jam_toggle_prob"`
}

// BufferConfig mirrors the pattern buffer parameters, shared by both
// participants.
type BufferConfig struct {
	Capacity int `yaml:"capacity"`
	LowWater int `yaml:"low_water"`
}

// HopConfig mirrors the hop timing parameters.
type HopConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// OrbitConfig selects and parameterizes the kinematics model. When TLEFile
// is set, the SGP4 model is used and the circular parameters are ignored.
type OrbitConfig struct {
	AltitudeKm      float64 `yaml:"altitude_km"`
	InclinationDeg  float64 `yaml:"inclination_deg"`
	RAANDeg         float64 `yaml:"raan_deg"`
	PhaseDeg        float64 `yaml:"phase_deg"`
	GroundLatDeg    float64 `yaml:"ground_lat_deg"`
	GroundLonDeg    float64 `yaml:"ground_lon_deg"`
	GroundAltM      float64 `yaml:"ground_alt_m"`
	MinElevationDeg float64 `yaml:"min_elevation_deg"`

	TLEFile       string `yaml:"tle_file"`
	SatelliteName string `yaml:"satellite_name"`
}

// LinkConfig mirrors the channel quality and decode parameters.
type LinkConfig struct {
	CarrierFreqHz        float64 `yaml:"carrier_freq_hz"`
	TxPowerDBW           float64 `yaml:"tx_power_dbw"`
	TxGainDBi            float64 `yaml:"tx_gain_dbi"`
	RxGainDBi            float64 `yaml:"rx_gain_dbi"`
	SystemTempK          float64 `yaml:"system_temp_k"`
	BandwidthHz          float64 `yaml:"bandwidth_hz"`
	SNRThresholdDB       float64 `yaml:"snr_threshold_db"`
	CompensationDisabled bool    `yaml:"compensation_disabled"`
}

// JamEventConfig schedules one administrative jam or restore.
type JamEventConfig struct {
	Tick    int  `yaml:"tick"`
	Channel int  `yaml:"channel"`
	Restore bool `yaml:"restore"`
}

// Default returns a runnable LEO scenario: an S-band downlink from a 550 km
// orbit passing over a mid-latitude ground station.
func Default() Scenario {
	return Scenario{
		Name:            "default",
		DurationSeconds: 600,
		TickSeconds:     0.1,
		RegenerateEvery: 1,
		Seed:            1,
		Source: SourceConfig{
			NumChannels:    3,
			NumFrequencies: 20,
			BandMinHz:      1.0e9,
			BandMaxHz:      2.0e9,
			CacheSize:      64,
		},
		Buffer: BufferConfig{
			Capacity: 128,
			LowWater: 8,
		},
		Hop: HopConfig{
			DurationSeconds: 0.5,
		},
		Orbit: OrbitConfig{
			AltitudeKm:      550,
			InclinationDeg:  53,
			// Node and phase place the satellite directly over the ground
			// station around t=300s, giving a near-zenith pass that rises
			// at ~50s and sets at ~550s of the default run.
			RAANDeg:         -142.2,
			PhaseDeg:        34.1,
			GroundLatDeg:    39.7392,
			GroundLonDeg:    -104.9903,
			GroundAltM:      1609,
			MinElevationDeg: 10,
		},
		Link: LinkConfig{
			CarrierFreqHz:  1.5e9,
			TxPowerDBW:     10,
			TxGainDBi:      6,
			RxGainDBi:      35,
			SystemTempK:    290,
			BandwidthHz:    1e6,
			SNRThresholdDB: 8,
		},
	}
}

// Load reads a scenario file, layering it over the defaults.
func Load(path string) (*Scenario, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate rejects scenarios the simulation cannot run.
func (s *Scenario) Validate() error {
	if s.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %v", s.TickSeconds)
	}
	if s.DurationSeconds <= 0 {
		return fmt.Errorf("duration_seconds must be positive, got %v", s.DurationSeconds)
	}
	if s.Source.NumChannels < 1 {
		return fmt.Errorf("source.num_channels must be at least 1, got %d", s.Source.NumChannels)
	}
	if s.Source.NumFrequencies < 1 {
		return fmt.Errorf("source.num_frequencies must be at least 1, got %d", s.Source.NumFrequencies)
	}
	if s.Source.BandMaxHz <= s.Source.BandMinHz {
		return fmt.Errorf("source band is empty: [%v, %v]", s.Source.BandMinHz, s.Source.BandMaxHz)
	}
	if s.Source.CacheSize < 1 {
		return fmt.Errorf("source.cache_size must be at least 1, got %d", s.Source.CacheSize)
	}
	if s.Buffer.Capacity < 1 {
		return fmt.Errorf("buffer.capacity must be at least 1, got %d", s.Buffer.Capacity)
	}
	if s.Hop.DurationSeconds <= 0 {
		return fmt.Errorf("hop.duration_seconds must be positive, got %v", s.Hop.DurationSeconds)
	}
	if s.Link.CarrierFreqHz <= 0 {
		return fmt.Errorf("link.carrier_freq_hz must be positive, got %v", s.Link.CarrierFreqHz)
	}
	for i, ev := range s.Jam {
		if ev.Channel < 1 || ev.Channel > s.Source.NumChannels {
			return fmt.Errorf("jam[%d]: channel %d outside 1..%d", i, ev.Channel, s.Source.NumChannels)
		}
	}
	return nil
}

// Ticks returns the total tick count for the configured duration.
func (s *Scenario) Ticks() int {
	return int(s.DurationSeconds / s.TickSeconds)
}
