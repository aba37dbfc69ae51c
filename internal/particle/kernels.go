package particle

// Kernels work on distances normalized by the interaction radius, so
// q is in [0,1] for neighbors and the constants stay scale free.

func poly6(q2 float64) float64 {
	if q2 >= 1 {
		return 0
	}
	d := 1 - q2
	return d * d * d
}

func spikyGrad(q float64) float64 {
	if q >= 1 || q < 1e-6 {
		return 0
	}
	d := 1 - q
	return d * d
}

func viscLap(q float64) float64 {
	if q >= 1 {
		return 0
	}
	return 1 - q
}

// Density is the normalized SPH density contribution of a neighbor at squared
// distance r2 for radius h.
func Density(r2, h float64) float64 {
	return poly6(r2 / (h * h))
}

// PressureGrad is the magnitude of the repulsive pressure kernel at distance r.
func PressureGrad(r, h float64) float64 {
	return spikyGrad(r / h)
}

// ViscosityLap is the viscosity kernel at distance r.
func ViscosityLap(r, h float64) float64 {
	return viscLap(r / h)
}
