package channel

import (
	"math"
	"math/rand"
	"testing"
)

func testQualityConfig() QualityConfig {
	return QualityConfig{
		CarrierFreqHz: 2.05e9,
		TxPowerDBW:    10,
		TxGainDBi:     6,
		RxGainDBi:     35,
		SystemTempK:   290,
		BandwidthHz:   1e6,
	}
}

func TestSNR_DecreasesWithRange(t *testing.T) {
	m := NewQualityModel(testQualityConfig(), rand.New(rand.NewSource(1)))

	// Average many samples to wash out the per-call perturbations.
	mean := func(rangeKm float64) float64 {
		var sum float64
		for i := 0; i < 500; i++ {
			sum += m.SNR(rangeKm, 45)
		}
		return sum / 500
	}

	near := mean(600)
	far := mean(2400)

	// Quadrupling range costs 12 dB of FSPL.
	if near <= far {
		t.Fatalf("SNR must fall with range: near=%.1f dB, far=%.1f dB", near, far)
	}
	if diff := near - far; math.Abs(diff-12.0) > 2.0 {
		t.Errorf("4x range cost %.1f dB, want ~12 dB", diff)
	}
}

func TestSNR_LowElevationLossier(t *testing.T) {
	m := NewQualityModel(testQualityConfig(), rand.New(rand.NewSource(2)))

	mean := func(el float64) float64 {
		var sum float64
		for i := 0; i < 500; i++ {
			sum += m.SNR(1000, el)
		}
		return sum / 500
	}

	if zenith, horizon := mean(90), mean(8); zenith <= horizon {
		t.Errorf("low elevation must be lossier: zenith=%.1f dB, horizon=%.1f dB", zenith, horizon)
	}
}

func TestSNR_PerCallVariation(t *testing.T) {
	m := NewQualityModel(testQualityConfig(), rand.New(rand.NewSource(3)))

	// The channel is time-varying: successive calls with identical
	// geometry must not all agree.
	first := m.SNR(1000, 45)
	var varied bool
	for i := 0; i < 50; i++ {
		if m.SNR(1000, 45) != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("expected stochastic variation across calls")
	}
}

func TestSNR_LinkBudgetBallpark(t *testing.T) {
	// Sanity-check the deterministic terms: at 1000 km and 2.05 GHz,
	// FSPL ≈ 158.7 dB, noise floor ≈ -143.9 dBW. With EIRP 16 dBW and
	// 35 dBi receive gain the mean SNR lands in the mid-30s dB, minus a
	// few dB of atmospheric terms.
	m := NewQualityModel(testQualityConfig(), rand.New(rand.NewSource(4)))

	var sum float64
	for i := 0; i < 500; i++ {
		sum += m.SNR(1000, 45)
	}
	mean := sum / 500

	if mean < 25 || mean > 40 {
		t.Errorf("mean SNR at 1000 km = %.1f dB, want mid-30s", mean)
	}
}
