package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropType is a closed enum of the crops the platform supports. Values are
// wire-level keys shared with the dashboard, so they stay in Spanish.
type CropType string

const (
	CropPapa      CropType = "papa"
	CropAguacate  CropType = "aguacate"
	CropArroz     CropType = "arroz"
	CropFlores    CropType = "flores"
	CropMariguana CropType = "mariguana"
)

// Valid reports whether t is one of the supported crop types.
func (t CropType) Valid() bool {
	switch t {
	case CropPapa, CropAguacate, CropArroz, CropFlores, CropMariguana:
		return true
	}
	return false
}

// SoilType is a closed enum of the soil textures the platform supports.
type SoilType string

const (
	SoilArenoso   SoilType = "arenoso"
	SoilFranco    SoilType = "franco"
	SoilArcilloso SoilType = "arcilloso"
)

// Valid reports whether s is one of the supported soil types.
func (s SoilType) Valid() bool {
	switch s {
	case SoilArenoso, SoilFranco, SoilArcilloso:
		return true
	}
	return false
}

// Crop — a cultivated plot tied to a weather station. Agronomic parameters
// (field capacity, wilting point, root depth) are inputs to the balance
// engine; the engine never mutates a crop.
type Crop struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username"      json:"username"`
	Nombre    string             `bson:"nombreCultivo" json:"nombreCultivo"`
	Tipo      CropType           `bson:"tipoCultivo"   json:"tipoCultivo"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`

	// Station the crop reads its weather from.
	IDEstacion     string `bson:"idEstacion"               json:"idEstacion"`
	NombreEstacion string `bson:"nombreEstacion,omitempty" json:"nombreEstacion,omitempty"`

	FechaSiembra         Fecha  `bson:"fechaSiembra"                   json:"fechaSiembra"`
	FechaCosechaEstimada *Fecha `bson:"fechaCosechaEstimada,omitempty" json:"fechaCosechaEstimada,omitempty"`

	AreaHectareas float64  `bson:"areaHectareas" json:"areaHectareas"` // ha, > 0
	TipoSuelo     SoilType `bson:"tipoSuelo"     json:"tipoSuelo"`

	// Soil water constants in mm over the root zone. Defaults come from the
	// soil type; users may override them, but capacity must stay above the
	// wilting point.
	CapacidadCampo    float64 `bson:"capacidadCampo" json:"capacidadCampo"`
	PuntoMarchitez    float64 `bson:"puntoMarchitez" json:"puntoMarchitez"`
	ProfundidadRaices float64 `bson:"profundidadRaices,omitempty" json:"profundidadRaices,omitempty"` // m

	IsActive bool   `bson:"isActive"        json:"isActive"`
	Notas    string `bson:"notas,omitempty" json:"notas,omitempty"`
}
