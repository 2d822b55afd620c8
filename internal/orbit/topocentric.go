package orbit

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0             // semi-major axis (meters)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// GroundStation holds the receiver site location in both geodetic and ECEF
// frames. ECEF coordinates are precomputed once so they can be reused across
// every tick of a simulation run.
type GroundStation struct {
	LatRad, LonRad, AltM float64 // geodetic (radians, meters above ellipsoid)
	ECEFx, ECEFy, ECEFz  float64 // precomputed ECEF (meters)
}

// NewGroundStation creates a GroundStation from geodetic coordinates.
// Latitude and longitude are in degrees, altitude in meters above the
// WGS-84 ellipsoid.
func NewGroundStation(latDeg, lonDeg, altM float64) GroundStation {
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	N := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return GroundStation{
		LatRad: lat,
		LonRad: lon,
		AltM:   altM,
		ECEFx:  (N + altM) * cosLat * math.Cos(lon),
		ECEFy:  (N + altM) * cosLat * math.Sin(lon),
		ECEFz:  (N*(1-wgs84E2) + altM) * sinLat,
	}
}

// LookAngles holds azimuth, elevation, range and range-rate from the ground
// station to the satellite. Range-rate is positive when the satellite is
// closing on the station.
type LookAngles struct {
	AzimuthDeg        float64 // 0 = North, clockwise
	ElevationDeg      float64 // 0 = horizon, 90 = zenith
	RangeKm           float64
	RangeRateKmPerSec float64
}

// LookAnglesTo computes azimuth, elevation, range and range-rate from a
// ground station to a satellite given in ECEF meters and m/s.
//
// Azimuth and elevation use the SEZ (South-East-Zenith) topocentric rotation
// per Vallado Section 4.4. Range-rate is the projection of the relative
// velocity on the line of sight; the station is Earth-fixed so its ECEF
// velocity is zero.
func LookAnglesTo(gs GroundStation, satX, satY, satZ, velX, velY, velZ float64) LookAngles {
	// Range vector in ECEF.
	rx := satX - gs.ECEFx
	ry := satY - gs.ECEFy
	rz := satZ - gs.ECEFz

	sinLat := math.Sin(gs.LatRad)
	cosLat := math.Cos(gs.LatRad)
	sinLon := math.Sin(gs.LonRad)
	cosLon := math.Cos(gs.LonRad)

	// Rotate ECEF range vector to SEZ (South, East, Zenith).
	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	rangeMag := math.Sqrt(south*south + east*east + zenith*zenith)
	if rangeMag < 1.0 {
		// Degenerate geometry (satellite on top of the station).
		return LookAngles{ElevationDeg: 90, RangeKm: rangeMag / 1000.0}
	}

	el := math.Asin(zenith / rangeMag)

	// Azimuth measured clockwise from North: in SEZ, North = -South,
	// so az = atan2(east, -south).
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	// d(range)/dt = (r · v) / |r|. Positive range-rate here means closing,
	// hence the sign flip.
	radial := (rx*velX + ry*velY + rz*velZ) / rangeMag

	return LookAngles{
		AzimuthDeg:        az * 180.0 / math.Pi,
		ElevationDeg:      el * 180.0 / math.Pi,
		RangeKm:           rangeMag / 1000.0,
		RangeRateKmPerSec: -radial / 1000.0,
	}
}
