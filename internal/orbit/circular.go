package orbit

import "math"

// Earth gravitational parameter, km³/s².
const muEarth = 398600.4418

// earthRadiusKm is the mean equatorial radius used for the circular model.
const earthRadiusKm = 6378.137

// CircularConfig parameterizes the closed-form circular orbit model.
type CircularConfig struct {
	AltitudeKm     float64
	InclinationDeg float64
	RAANDeg        float64 // right ascension of the ascending node at epoch
	PhaseDeg       float64 // argument of latitude at epoch

	GroundLatDeg float64
	GroundLonDeg float64
	GroundAltM   float64

	MinElevationDeg float64 // visibility cutoff
}

// Circular is a closed-form circular-orbit kinematics model. The satellite
// moves at constant angular rate in a fixed orbital plane; Earth rotates
// beneath it at the sidereal rate. All derived state is a pure function of
// elapsed time.
type Circular struct {
	cfg CircularConfig
	gs  GroundStation

	radiusKm   float64
	meanMotion float64 // rad/s
	incRad     float64
	raanRad    float64
	phaseRad   float64
}

// NewCircular creates a circular-orbit model. The epoch (t=0) has the
// satellite at PhaseDeg past the ascending node with the Greenwich meridian
// aligned to the inertial x-axis.
func NewCircular(cfg CircularConfig) *Circular {
	r := earthRadiusKm + cfg.AltitudeKm
	return &Circular{
		cfg:        cfg,
		gs:         NewGroundStation(cfg.GroundLatDeg, cfg.GroundLonDeg, cfg.GroundAltM),
		radiusKm:   r,
		meanMotion: math.Sqrt(muEarth / (r * r * r)),
		incRad:     cfg.InclinationDeg * math.Pi / 180.0,
		raanRad:    cfg.RAANDeg * math.Pi / 180.0,
		phaseRad:   cfg.PhaseDeg * math.Pi / 180.0,
	}
}

// PeriodSeconds returns the orbital period.
func (c *Circular) PeriodSeconds() float64 {
	return 2 * math.Pi / c.meanMotion
}

// GroundSite returns the model's ground station.
func (c *Circular) GroundSite() GroundStation {
	return c.gs
}

// StateAt returns the link geometry at t seconds past the epoch.
func (c *Circular) StateAt(t float64) State {
	u := c.phaseRad + c.meanMotion*t
	cosU := math.Cos(u)
	sinU := math.Sin(u)
	cosI := math.Cos(c.incRad)
	sinI := math.Sin(c.incRad)
	cosO := math.Cos(c.raanRad)
	sinO := math.Sin(c.raanRad)

	// Inertial position (km) for a circular orbit, standard orbital-plane
	// rotation with eccentricity 0.
	x := c.radiusKm * (cosO*cosU - sinO*sinU*cosI)
	y := c.radiusKm * (sinO*cosU + cosO*sinU*cosI)
	z := c.radiusKm * sinU * sinI

	// Inertial velocity (km/s): d/du of the above times the angular rate.
	v := c.radiusKm * c.meanMotion
	vx := v * (-cosO*sinU - sinO*cosU*cosI)
	vy := v * (-sinO*sinU + cosO*cosU*cosI)
	vz := v * cosU * sinI

	st := inertialToECEF(x, y, z, vx, vy, vz, omegaEarth*t)
	la := LookAnglesTo(c.gs, st.X, st.Y, st.Z, st.VX, st.VY, st.VZ)

	return State{
		RangeKm:           la.RangeKm,
		RangeRateKmPerSec: la.RangeRateKmPerSec,
		ElevationDeg:      la.ElevationDeg,
		AzimuthDeg:        la.AzimuthDeg,
		Visible:           la.ElevationDeg >= c.cfg.MinElevationDeg,
	}
}
