package balance

import (
	"math"

	"agroclima/models"
)

// StageAt resolves the active growth stage for a crop that was sown
// diasDesdeSiembra days ago. Day counts are half-open per stage: a count
// exactly at a cumulative boundary belongs to the next stage. Past the
// nominal cycle the final stage stays active — an overdue crop keeps its
// last Kc rather than failing.
func StageAt(p Profile, diasDesdeSiembra int) (Stage, error) {
	if diasDesdeSiembra < 0 {
		return Stage{}, ErrInvalidSowingDate
	}
	acumulado := 0
	for _, e := range p.Etapas {
		acumulado += e.Dias
		if diasDesdeSiembra < acumulado {
			return e, nil
		}
	}
	return p.Etapas[len(p.Etapas)-1], nil
}

// ComputeETc scales reference evapotranspiration by the active stage's
// crop coefficient: ETc = ET0 × Kc.
func ComputeETc(et0 float64, tipo models.CropType, diasDesdeSiembra int) (etc float64, stage Stage, err error) {
	p, err := ProfileFor(tipo)
	if err != nil {
		return 0, Stage{}, err
	}
	stage, err = StageAt(p, diasDesdeSiembra)
	if err != nil {
		return 0, Stage{}, err
	}
	return et0 * stage.Kc, stage, nil
}

// ET0FromObservation returns the day's reference evapotranspiration. A
// stored ET0 wins; otherwise it is derived with the Hargreaves radiation
// method from measured solar radiation and the temperature pair:
//
//	ET0 = 0.0135 × Rs × (Tmean + 17.8)   with Rs in mm/day (MJ/m² × 0.408)
//
// The result is clamped at zero. Returns ErrMissingWeatherData when the
// observation carries neither ET0 nor the variables to derive it.
func ET0FromObservation(obs models.Observation) (float64, error) {
	if obs.ET0 != nil {
		return math.Max(*obs.ET0, 0), nil
	}
	if obs.RadiacionMJm2 == nil || obs.TempMax == nil || obs.TempMin == nil {
		return 0, ErrMissingWeatherData
	}
	rs := *obs.RadiacionMJm2 * 0.408
	tmean := (*obs.TempMax + *obs.TempMin) / 2
	return math.Max(0.0135*rs*(tmean+17.8), 0), nil
}
