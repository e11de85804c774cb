package balance

import (
	"math"

	"agroclima/models"
)

// Entry is the computed water balance for one crop on one date. JSON field
// names are the wire contract the dashboard consumes. An Entry either
// carries the computed fields or an Error message, never both.
type Entry struct {
	Fecha            models.Fecha `json:"fecha"`
	DiasDesdeSiembra int          `json:"diasDesdeSiembra"`
	EtapaActual      string       `json:"etapaActual,omitempty"`
	Kc               float64      `json:"kc"`
	ET0              float64      `json:"et0"`
	Precipitacion    float64      `json:"precipitacion"`
	ETc              float64      `json:"etc"`
	BalanceDiario    float64      `json:"balanceDiario"`
	AguaDisponible   float64      `json:"aguaDisponible"`
	PorcentajeAgua   float64      `json:"porcentajeAgua"`
	NivelEstres      StressLevel  `json:"nivelEstres,omitempty"`
	Recomendacion    string       `json:"recomendacion,omitempty"`
	RiegoNecesarioMM float64      `json:"riegoNecesario_mm"`
	VolumenRiegoM3   float64      `json:"volumenRiego_m3"`

	// Set instead of the computed fields when the day could not be
	// resolved (no weather record, date before sowing). The dashboard
	// skips entries with an error when charting.
	Error string `json:"error,omitempty"`
}

// ComputeForDate computes the full balance entry for one crop and date.
// prevBucket carries the bucket level from the previous day; nil means no
// prior record, in which case the bucket starts at field capacity (the
// field is assumed saturated when tracking begins). Pure function of its
// inputs — no clock, no I/O.
func ComputeForDate(crop models.Crop, fecha models.Fecha, obs models.Observation, prevBucket *float64) (Entry, error) {
	if !crop.Tipo.Valid() {
		return Entry{}, ErrUnknownCropType
	}
	if !crop.TipoSuelo.Valid() {
		return Entry{}, ErrUnknownSoilType
	}
	dias := fecha.DaysSince(crop.FechaSiembra)
	if dias < 0 {
		return Entry{}, ErrDateBeforeSowing
	}

	et0, err := ET0FromObservation(obs)
	if err != nil {
		return Entry{}, err
	}
	etc, stage, err := ComputeETc(et0, crop.Tipo, dias)
	if err != nil {
		return Entry{}, err
	}

	previo := crop.CapacidadCampo
	if prevBucket != nil {
		previo = *prevBucket
	}
	bucket, diario := ApplyDailyBalance(previo, crop.CapacidadCampo, crop.PuntoMarchitez, obs.Precipitacion, etc)
	pct := AvailableWaterPct(bucket, crop.CapacidadCampo, crop.PuntoMarchitez)
	riego := Recommend(bucket, crop.CapacidadCampo, crop.PuntoMarchitez, crop.AreaHectareas)

	return Entry{
		Fecha:            fecha,
		DiasDesdeSiembra: dias,
		EtapaActual:      stage.Nombre,
		Kc:               stage.Kc,
		ET0:              round2(et0),
		Precipitacion:    round2(obs.Precipitacion),
		ETc:              round2(etc),
		BalanceDiario:    round2(diario),
		AguaDisponible:   round2(bucket),
		PorcentajeAgua:   round2(pct),
		NivelEstres:      ClassifyStress(pct),
		Recomendacion:    riego.Texto,
		RiegoNecesarioMM: round2(riego.LaminaMM),
		VolumenRiegoM3:   round2(riego.VolumenM3),
	}, nil
}

// round2 rounds to two decimals for presentation. Carried bucket state is
// never rounded, only the reported fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
