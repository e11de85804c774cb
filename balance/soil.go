package balance

// StressLevel classifies how much extractable water the crop has left.
// Values are the exact labels the dashboard colors by.
type StressLevel string

const (
	SinEstres      StressLevel = "Sin estrés"
	EstresLeve     StressLevel = "Estrés leve"
	EstresModerado StressLevel = "Estrés moderado"
	EstresSevero   StressLevel = "Estrés severo"
)

// umbralRiego is the available-water percentage below which irrigation is
// recommended.
const umbralRiego = 50.0

// ApplyDailyBalance advances the root-zone water bucket by one day:
// precipitation in, crop evapotranspiration out, result clamped into
// [wiltingPoint, fieldCapacity]. Water above capacity drains and is
// dropped; the bucket never falls below the wilting point because the
// crop cannot extract past it.
func ApplyDailyBalance(previo, capacidadCampo, puntoMarchitez, precipitacion, etc float64) (nuevo, balanceDiario float64) {
	balanceDiario = precipitacion - etc
	nuevo = previo + balanceDiario
	if nuevo > capacidadCampo {
		nuevo = capacidadCampo
	}
	if nuevo < puntoMarchitez {
		nuevo = puntoMarchitez
	}
	return nuevo, balanceDiario
}

// AvailableWaterPct expresses the bucket as a percentage of the extractable
// range (fieldCapacity − wiltingPoint). With a clamped bucket this is
// always within [0, 100].
func AvailableWaterPct(bucket, capacidadCampo, puntoMarchitez float64) float64 {
	return (bucket - puntoMarchitez) / (capacidadCampo - puntoMarchitez) * 100
}

// ClassifyStress maps an available-water percentage to a stress level.
// Thresholds at 70/50/30, lower bound inclusive.
func ClassifyStress(pct float64) StressLevel {
	switch {
	case pct >= 70:
		return SinEstres
	case pct >= 50:
		return EstresLeve
	case pct >= 30:
		return EstresModerado
	default:
		return EstresSevero
	}
}

// Riego is an irrigation recommendation: the depth that refills the bucket
// to field capacity and the total volume for the plot area (1 mm over 1 ha
// = 10 m³).
type Riego struct {
	LaminaMM  float64
	VolumenM3 float64
	Texto     string
}

// Recommend produces the irrigation advice for the current bucket state.
// Below 50% available water the deficit to field capacity is recommended;
// above it no irrigation is needed.
func Recommend(bucket, capacidadCampo, puntoMarchitez, areaHectareas float64) Riego {
	pct := AvailableWaterPct(bucket, capacidadCampo, puntoMarchitez)
	if pct >= umbralRiego {
		return Riego{Texto: "No se requiere riego"}
	}
	lamina := capacidadCampo - bucket
	r := Riego{
		LaminaMM:  lamina,
		VolumenM3: lamina * areaHectareas * 10,
	}
	if ClassifyStress(pct) == EstresSevero {
		r.Texto = "Riego urgente: reponer el déficit hídrico"
	} else {
		r.Texto = "Se recomienda regar para reponer el déficit"
	}
	return r
}
