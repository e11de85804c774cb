package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Observation — one aggregated day of weather for a station, as ingested
// from loggers or manual upload. Precipitation is the only required metric;
// ET0 may be supplied directly or derived later from the temperature pair.
type Observation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDEstacion string             `bson:"idEstacion"    json:"idEstacion"`
	Fecha      Fecha              `bson:"fecha"         json:"fecha"`

	Precipitacion float64  `bson:"precipitacion" json:"precipitacion"` // mm, >= 0
	ET0           *float64 `bson:"et0,omitempty" json:"et0,omitempty"` // mm, >= 0

	// Raw variables kept for ET0 derivation and climate statistics.
	TempMax        *float64 `bson:"tempMax,omitempty"        json:"tempMax,omitempty"`        // deg C
	TempMin        *float64 `bson:"tempMin,omitempty"        json:"tempMin,omitempty"`        // deg C
	HumedadPct     *float64 `bson:"humedadPct,omitempty"     json:"humedadPct,omitempty"`     // %
	VientoMps      *float64 `bson:"vientoMps,omitempty"      json:"vientoMps,omitempty"`      // m/s
	RadiacionMJm2  *float64 `bson:"radiacionMJm2,omitempty"  json:"radiacionMJm2,omitempty"`  // MJ/m2/day
}
