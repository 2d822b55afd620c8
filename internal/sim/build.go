package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/BelaBartok39/JIT-FHSS/internal/channel"
	"github.com/BelaBartok39/JIT-FHSS/internal/config"
	"github.com/BelaBartok39/JIT-FHSS/internal/doppler"
	"github.com/BelaBartok39/JIT-FHSS/internal/hop"
	"github.com/BelaBartok39/JIT-FHSS/internal/orbit"
	"github.com/BelaBartok39/JIT-FHSS/internal/pattern"
)

// Build wires a full runner from a scenario. All randomness derives from the
// scenario seed, so equal scenarios produce equal runs.
func Build(scn *config.Scenario, logger *slog.Logger) (*Runner, error) {
	if err := scn.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(scn.Seed))

	kin, err := buildKinematics(scn, logger)
	if err != nil {
		return nil, err
	}

	src := pattern.NewSource(pattern.SourceConfig{
		NumChannels:    scn.Source.NumChannels,
		NumFrequencies: scn.Source.NumFrequencies,
		BandMinHz:      scn.Source.BandMinHz,
		BandMaxHz:      scn.Source.BandMaxHz,
		CacheSize:      scn.Source.CacheSize,
		JamToggleProb:  scn.Source.JamToggleProb,
	}, rng, logger)

	hopCfg := hop.Config{HopDurationSec: scn.Hop.DurationSeconds}

	var runner *Runner
	onLow := func(remaining int) {
		if runner != nil {
			runner.RequestRefill(remaining)
		}
	}

	txBuf := pattern.NewBuffer(pattern.BufferConfig{
		Owner:    "sender",
		Capacity: scn.Buffer.Capacity,
		LowWater: scn.Buffer.LowWater,
		OnLow:    onLow,
	}, logger)
	rxBuf := pattern.NewBuffer(pattern.BufferConfig{
		Owner:    "receiver",
		Capacity: scn.Buffer.Capacity,
		LowWater: scn.Buffer.LowWater,
		OnLow:    onLow,
	}, logger)

	quality := channel.NewQualityModel(channel.QualityConfig{
		CarrierFreqHz: scn.Link.CarrierFreqHz,
		TxPowerDBW:    scn.Link.TxPowerDBW,
		TxGainDBi:     scn.Link.TxGainDBi,
		RxGainDBi:     scn.Link.RxGainDBi,
		SystemTempK:   scn.Link.SystemTempK,
		BandwidthHz:   scn.Link.BandwidthHz,
	}, rng)

	rxClock := channel.NewClock(channel.GradeTCXO, 0, rng)

	sender := hop.NewSender(hopCfg, txBuf, kin, logger)
	receiver := hop.NewReceiver(hop.ReceiverConfig{
		Config:         hopCfg,
		SNRThresholdDB: scn.Link.SNRThresholdDB,
	}, rxBuf, kin, quality, rxClock, doppler.Compensator{Disabled: scn.Link.CompensationDisabled}, logger)

	jam := make([]JamEvent, 0, len(scn.Jam))
	for _, ev := range scn.Jam {
		jam = append(jam, JamEvent{Tick: ev.Tick, Channel: ev.Channel, Restore: ev.Restore})
	}

	runner = NewRunner(Options{
		TickSeconds:     scn.TickSeconds,
		Ticks:           scn.Ticks(),
		RegenerateEvery: scn.RegenerateEvery,
		JamSchedule:     jam,
	}, src, sender, receiver, txBuf, rxBuf, kin, logger)

	return runner, nil
}

// buildKinematics selects the TLE/SGP4 model when a TLE file is configured,
// otherwise the closed-form circular model.
func buildKinematics(scn *config.Scenario, logger *slog.Logger) (orbit.Kinematics, error) {
	if scn.Orbit.TLEFile == "" {
		return orbit.NewCircular(orbit.CircularConfig{
			AltitudeKm:      scn.Orbit.AltitudeKm,
			InclinationDeg:  scn.Orbit.InclinationDeg,
			RAANDeg:         scn.Orbit.RAANDeg,
			PhaseDeg:        scn.Orbit.PhaseDeg,
			GroundLatDeg:    scn.Orbit.GroundLatDeg,
			GroundLonDeg:    scn.Orbit.GroundLonDeg,
			GroundAltM:      scn.Orbit.GroundAltM,
			MinElevationDeg: scn.Orbit.MinElevationDeg,
		}), nil
	}

	f, err := os.Open(scn.Orbit.TLEFile)
	if err != nil {
		return nil, fmt.Errorf("opening TLE file: %w", err)
	}
	defer f.Close()

	entries, err := orbit.ParseTLE(f, logger)
	if err != nil {
		return nil, err
	}
	entry, err := orbit.FindTLE(entries, scn.Orbit.SatelliteName)
	if err != nil {
		return nil, err
	}

	gs := orbit.NewGroundStation(scn.Orbit.GroundLatDeg, scn.Orbit.GroundLonDeg, scn.Orbit.GroundAltM)
	return orbit.NewTLEKinematics(entry.Line1, entry.Line2, entry.NORADID, gs, entry.Epoch, scn.Orbit.MinElevationDeg)
}
