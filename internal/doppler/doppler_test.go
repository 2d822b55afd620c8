package doppler

import (
	"math"
	"testing"
)

func TestShift_SBandMagnitude(t *testing.T) {
	// S-band carrier closing at 4 km/s: shift = 2.05e9 * 4000 / 2.998e8 ≈ +27.35 kHz.
	shift := Shift(2.05e9, 4.0)

	want := 27300.0
	if math.Abs(shift-want) > want*0.01 {
		t.Errorf("Shift(2.05e9, 4.0) = %.1f Hz, want %.0f Hz ±1%%", shift, want)
	}
	if shift <= 0 {
		t.Errorf("closing range-rate must blue-shift, got %.1f Hz", shift)
	}
}

func TestShift_Signs(t *testing.T) {
	if s := Shift(2e9, -4.0); s >= 0 {
		t.Errorf("receding range-rate must red-shift, got %.1f Hz", s)
	}
	if s := Shift(2e9, 0); s != 0 {
		t.Errorf("zero range-rate must give zero shift, got %.6f Hz", s)
	}
}

func TestCompensate_RoundTrip(t *testing.T) {
	cases := []struct {
		txFreq    float64
		rangeRate float64
	}{
		{2.05e9, 4.0},
		{2.05e9, -7.2},
		{435e6, 3.1},
		{8.4e9, -0.05},
		{2.0e9, 0},
	}

	var comp Compensator
	for _, tc := range cases {
		rx := Apply(tc.txFreq, tc.rangeRate)
		got := comp.Compensate(rx, tc.rangeRate, tc.txFreq)

		if rel := math.Abs(got-tc.txFreq) / tc.txFreq; rel > 1e-6 {
			t.Errorf("Compensate(Apply(%.3e, %.2f)) = %.6f, relative error %.2e", tc.txFreq, tc.rangeRate, got, rel)
		}
	}
}

func TestCompensate_Disabled(t *testing.T) {
	comp := Compensator{Disabled: true}
	rx := Apply(2.05e9, 4.0)
	if got := comp.Compensate(rx, 4.0, 2.05e9); got != rx {
		t.Errorf("disabled compensator must pass through, got %.3f want %.3f", got, rx)
	}
}

func TestPropagationDelay(t *testing.T) {
	// 1500 km slant range: 1.5e6 / 2.998e8 ≈ 5.003 ms.
	d := PropagationDelay(1500)
	if math.Abs(d-5.003e-3) > 1e-5 {
		t.Errorf("PropagationDelay(1500) = %.6f s, want ~0.005003 s", d)
	}
	if rt := RoundTripDelay(1500); math.Abs(rt-2*d) > 1e-12 {
		t.Errorf("RoundTripDelay = %.6f s, want exactly 2x one-way %.6f s", rt, d)
	}
}
