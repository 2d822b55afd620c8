package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BelaBartok39/JIT-FHSS/internal/hop"
)

func TestSummarize_CountsAndRates(t *testing.T) {
	rx := []hop.ReceiveRecord{
		{Success: true, SNRdB: 10},
		{Success: true, SNRdB: 20},
		{Success: false, FailureReason: hop.ReasonLowSNR, SNRdB: 30},
		{Success: false, FailureReason: hop.ReasonLowSNR, SNRdB: 40},
		{Success: false, FailureReason: hop.ReasonFrequencyMismatch, SNRdB: 50},
	}
	tx := []hop.TransmitRecord{
		{DopplerShiftHz: 100, RangeKm: 900},
		{DopplerShiftHz: -300, RangeKm: 600},
		{DopplerShiftHz: 200, RangeKm: 1500},
	}

	s := Summarize("run-1", tx, rx, 50, 5)

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 50, s.Ticks)
	assert.Equal(t, 5, s.VisibleTicks)
	assert.Equal(t, 5, s.Transmissions)
	assert.Equal(t, 2, s.Successes)
	assert.InDelta(t, 0.4, s.SuccessRate, 1e-12)
	assert.Equal(t, map[string]int{
		hop.ReasonLowSNR:            2,
		hop.ReasonFrequencyMismatch: 1,
	}, s.Failures)

	// SNR samples 10..50: mean 30, sample standard deviation sqrt(250).
	assert.InDelta(t, 30.0, s.SNRMeanDB, 1e-12)
	assert.InDelta(t, 15.811388300841896, s.SNRStdDevDB, 1e-9)

	assert.InDelta(t, 0.0, s.DopplerMeanHz, 1e-12)
	assert.Equal(t, 300.0, s.DopplerMaxAbsHz)
	assert.Equal(t, 600.0, s.RangeMinKm)
	assert.Equal(t, 1500.0, s.RangeMaxKm)
}

func TestSummarize_EmptyLogs(t *testing.T) {
	s := Summarize("run-2", nil, nil, 10, 0)

	assert.Zero(t, s.Transmissions)
	assert.Zero(t, s.SuccessRate)
	assert.Empty(t, s.Failures)
	assert.Zero(t, s.SNRMeanDB)
	assert.Zero(t, s.RangeMinKm)
	assert.Zero(t, s.RangeMaxKm)
}
