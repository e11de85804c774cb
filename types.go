package main

import (
	"agroclima/models"
)

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// cultivoReq mirrors the dashboard's crop form. Soil water constants are
// pointers: when omitted they fall back to the soil type's defaults.
type cultivoReq struct {
	NombreCultivo        string          `json:"nombreCultivo"`
	TipoCultivo          models.CropType `json:"tipoCultivo"`
	IDEstacion           string          `json:"idEstacion"`
	NombreEstacion       string          `json:"nombreEstacion,omitempty"`
	FechaSiembra         *models.Fecha   `json:"fechaSiembra"`
	FechaCosechaEstimada *models.Fecha   `json:"fechaCosechaEstimada,omitempty"`
	AreaHectareas        float64         `json:"areaHectareas"`
	TipoSuelo            models.SoilType `json:"tipoSuelo"`
	CapacidadCampo       *float64        `json:"capacidadCampo,omitempty"`
	PuntoMarchitez       *float64        `json:"puntoMarchitez,omitempty"`
	ProfundidadRaices    *float64        `json:"profundidadRaices,omitempty"`
	IsActive             *bool           `json:"isActive,omitempty"`
	Notas                string          `json:"notas,omitempty"`
	Username             string          `json:"username,omitempty"`
}

// observacionReq is one ingested day of station weather.
type observacionReq struct {
	IDEstacion    string        `json:"idEstacion"`
	Fecha         *models.Fecha `json:"fecha"`
	Precipitacion float64       `json:"precipitacion"`
	ET0           *float64      `json:"et0,omitempty"`
	TempMax       *float64      `json:"tempMax,omitempty"`
	TempMin       *float64      `json:"tempMin,omitempty"`
	HumedadPct    *float64      `json:"humedadPct,omitempty"`
	VientoMps     *float64      `json:"vientoMps,omitempty"`
	RadiacionMJm2 *float64      `json:"radiacionMJm2,omitempty"`
}

// metricStats summarizes one observed variable over the stats window.
type metricStats struct {
	Media      float64 `json:"media"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Desviacion float64 `json:"desviacion"`
	Muestras   int     `json:"muestras"`
}

// climateStatsResp aggregates a station's recent observations.
type climateStatsResp struct {
	IDEstacion         string       `json:"idEstacion"`
	Dias               int          `json:"dias"`
	Precipitacion      *metricStats `json:"precipitacion,omitempty"`
	PrecipitacionTotal float64      `json:"precipitacionTotal"`
	TempMax            *metricStats `json:"tempMax,omitempty"`
	TempMin            *metricStats `json:"tempMin,omitempty"`
	ET0                *metricStats `json:"et0,omitempty"`
}

// balanceError is the JSON shape the dashboard checks for on balance
// endpoints: a 200 body carrying an error field instead of computed values.
type balanceError struct {
	Error string `json:"error"`
}
