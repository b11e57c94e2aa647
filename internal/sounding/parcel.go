package sounding

import "math"

// Thermodynamic constants (SI, temperatures in Kelvin unless noted).
const (
	kelvin     = 273.15
	rd         = 287.04  // dry air gas constant, J/(kg K)
	cpd        = 1005.7  // dry air specific heat, J/(kg K)
	latentHeat = 2.501e6 // latent heat of vaporization, J/kg
	epsilon    = 0.622   // Rd/Rv
	kappa      = rd / cpd
)

// saturationVaporPressure returns es in hPa for a temperature in Celsius
// (Bolton 1980, eq. 10).
func saturationVaporPressure(tempC float64) float64 {
	return 6.112 * math.Exp(17.67*tempC/(tempC+243.5))
}

// saturationMixingRatio returns rs (kg/kg) at pressure p (hPa) and
// temperature tempC (Celsius).
func saturationMixingRatio(p, tempC float64) float64 {
	es := saturationVaporPressure(tempC)
	return epsilon * es / (p - es)
}

// LCL returns the lifted condensation level temperature (Kelvin) and
// pressure (hPa) for a surface parcel (Bolton 1980, eq. 15).
func LCL(pressure, tempC, dewpointC float64) (tK, pHPa float64) {
	tk := tempC + kelvin
	tdk := dewpointC + kelvin

	tLCL := 1/(1/(tdk-56)+math.Log(tk/tdk)/800) + 56
	pLCL := pressure * math.Pow(tLCL/tk, 1/kappa)
	return tLCL, pLCL
}

// moistLapse integrates the pseudoadiabatic lapse from (p0, t0) down to
// pressure p, stepping in small pressure increments. Pressures in hPa,
// temperatures in Kelvin.
func moistLapse(p0, t0, p float64) float64 {
	const dp = 1.0 // hPa step
	t := t0
	for pr := p0; pr > p; {
		step := math.Min(dp, pr-p)
		tempC := t - kelvin
		rs := saturationMixingRatio(pr, tempC)
		num := rd*t + latentHeat*rs
		den := cpd + (latentHeat*latentHeat*rs*epsilon)/(rd*t*t)
		// dT/dp of a saturated parcel; pressure in Pa inside the quotient
		// cancels because only the ratio dp/p appears.
		t -= (num / den) * (step / pr)
		pr -= step
	}
	return t
}

// ParcelProfile lifts the surface parcel through every level of the
// profile: dry adiabatic ascent to the LCL, pseudoadiabatic above it.
// The result is in Celsius, one temperature per level, and underpins the
// parcel trace on the Skew-T chart.
func ParcelProfile(p Profile) ([]float64, error) {
	if len(p.Levels) == 0 {
		return nil, ErrEmptyProfile
	}
	sfc := p.Levels[0]
	sfcTK := sfc.Temperature + kelvin
	tLCL, pLCL := LCL(sfc.Pressure, sfc.Temperature, sfc.Dewpoint)

	out := make([]float64, len(p.Levels))
	for i, level := range p.Levels {
		switch {
		case level.Pressure >= pLCL:
			// Dry adiabat from the surface.
			out[i] = sfcTK*math.Pow(level.Pressure/sfc.Pressure, kappa) - kelvin
		default:
			out[i] = moistLapse(pLCL, tLCL, level.Pressure) - kelvin
		}
	}
	return out, nil
}
