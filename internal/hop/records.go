package hop

// Decode failure classifications, in check order. Only the first failing
// condition is recorded even when several fail at once.
const (
	ReasonLowSNR            = "Low SNR"
	ReasonClockDrift        = "Clock drift"
	ReasonFrequencyMismatch = "Frequency mismatch"
)

// TransmitRecord is the immutable log entry appended on every transmission.
// Field names are part of the downstream reporting contract.
type TransmitRecord struct {
	Time           float64 `json:"time"`
	TransmitFreqHz float64 `json:"transmitFreq"`
	ReceivedFreqHz float64 `json:"receivedFreq"`
	DopplerShiftHz float64 `json:"dopplerShift"`
	RangeKm        float64 `json:"range"`
	RangeRateKmS   float64 `json:"rangeRate"`
	DataSymbol     int     `json:"dataSymbol"`
}

// ReceiveRecord is the immutable log entry appended on every decode attempt,
// carrying every intermediate quantity of the decision.
type ReceiveRecord struct {
	Time              float64 `json:"time"`
	ExpectedFreqHz    float64 `json:"expectedFreq"`
	ReceivedFreqHz    float64 `json:"receivedFreq"`
	CompensatedFreqHz float64 `json:"compensatedFreq"`
	SNRdB             float64 `json:"snr"`
	ClockErrorSec     float64 `json:"clockError"`
	RangeKm           float64 `json:"range"`
	RangeRateKmS      float64 `json:"rangeRate"`
	Success           bool    `json:"success"`
	FailureReason     string  `json:"failureReason"` // empty on success
	DataSymbol        int     `json:"dataSymbol"`
}

// decodeOutcome maps a failure reason to its metrics label.
func decodeOutcome(reason string) string {
	switch reason {
	case "":
		return "success"
	case ReasonLowSNR:
		return "low_snr"
	case ReasonClockDrift:
		return "clock_drift"
	default:
		return "frequency_mismatch"
	}
}
