package balance

import "errors"

// Engine failure modes. Input errors are rejected synchronously and never
// retried; ErrMissingWeatherData is the only recoverable one — range
// queries turn it into a per-day error entry instead of aborting.
var (
	ErrUnknownCropType    = errors.New("tipo de cultivo desconocido")
	ErrUnknownSoilType    = errors.New("tipo de suelo desconocido")
	ErrInvalidSowingDate  = errors.New("fecha de siembra inválida")
	ErrDateBeforeSowing   = errors.New("la fecha es anterior a la siembra")
	ErrMissingWeatherData = errors.New("sin datos meteorológicos para la fecha")
	ErrInvalidDateRange   = errors.New("rango de fechas inválido")
)
