package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/BelaBartok39/JIT-FHSS/internal/hop"
)

// Summary aggregates one run for downstream reporting. Serialized as JSON by
// the driver binaries.
type Summary struct {
	RunID        string `json:"runId"`
	Ticks        int    `json:"ticks"`
	VisibleTicks int    `json:"visibleTicks"`

	Transmissions int     `json:"transmissions"`
	Successes     int     `json:"successes"`
	SuccessRate   float64 `json:"successRate"`

	Failures map[string]int `json:"failures"`

	PatternsGenerated uint64 `json:"patternsGenerated"`
	CacheFallbacks    uint64 `json:"cacheFallbacks"`

	SNRMeanDB   float64 `json:"snrMeanDb"`
	SNRStdDevDB float64 `json:"snrStdDevDb"`

	DopplerMeanHz   float64 `json:"dopplerMeanHz"`
	DopplerMaxAbsHz float64 `json:"dopplerMaxAbsHz"`

	RangeMinKm float64 `json:"rangeMinKm"`
	RangeMaxKm float64 `json:"rangeMaxKm"`
}

// Summarize reduces the participants' logs into a Summary.
func Summarize(runID string, tx []hop.TransmitRecord, rx []hop.ReceiveRecord, ticks, visibleTicks int) Summary {
	s := Summary{
		RunID:        runID,
		Ticks:        ticks,
		VisibleTicks: visibleTicks,
		Failures:     make(map[string]int),
	}

	snrs := make([]float64, 0, len(rx))
	for _, rec := range rx {
		if rec.Success {
			s.Successes++
		} else {
			s.Failures[rec.FailureReason]++
		}
		snrs = append(snrs, rec.SNRdB)
	}
	s.Transmissions = len(rx)
	if s.Transmissions > 0 {
		s.SuccessRate = float64(s.Successes) / float64(s.Transmissions)
	}

	if len(snrs) > 0 {
		s.SNRMeanDB = stat.Mean(snrs, nil)
		s.SNRStdDevDB = stat.StdDev(snrs, nil)
	}

	if len(tx) > 0 {
		shifts := make([]float64, 0, len(tx))
		s.RangeMinKm = math.Inf(1)
		for _, rec := range tx {
			shifts = append(shifts, rec.DopplerShiftHz)
			if abs := math.Abs(rec.DopplerShiftHz); abs > s.DopplerMaxAbsHz {
				s.DopplerMaxAbsHz = abs
			}
			if rec.RangeKm < s.RangeMinKm {
				s.RangeMinKm = rec.RangeKm
			}
			if rec.RangeKm > s.RangeMaxKm {
				s.RangeMaxKm = rec.RangeKm
			}
		}
		s.DopplerMeanHz = stat.Mean(shifts, nil)
	}

	return s
}
