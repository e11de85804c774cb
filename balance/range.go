package balance

import (
	"context"
	"errors"

	"agroclima/models"
)

// ObservationLookup fetches the stored weather observation for a station
// and date. Implementations must translate their own "no record" signal
// into ErrMissingWeatherData; transient I/O failures should be returned
// as-is and abort the range.
type ObservationLookup func(ctx context.Context, idEstacion string, fecha models.Fecha) (models.Observation, error)

// ComputeRange replays the daily balance over [inicio, fin], one entry per
// day ascending, carrying the bucket level forward between days. Days
// without weather data (and days before sowing) yield error-marked entries
// but do not break bucket continuity: the next computable day resumes from
// the last good bucket, or from field capacity if none was computed yet.
func ComputeRange(ctx context.Context, crop models.Crop, inicio, fin models.Fecha, lookup ObservationLookup) ([]Entry, error) {
	if inicio.After(fin.Time) {
		return nil, ErrInvalidDateRange
	}
	if !crop.Tipo.Valid() {
		return nil, ErrUnknownCropType
	}
	if !crop.TipoSuelo.Valid() {
		return nil, ErrUnknownSoilType
	}

	dias := fin.DaysSince(inicio) + 1
	entries := make([]Entry, 0, dias)

	var prev *float64
	for fecha := inicio; !fecha.After(fin.Time); fecha = fecha.AddDays(1) {
		obs, err := lookup(ctx, crop.IDEstacion, fecha)
		if err != nil {
			if errors.Is(err, ErrMissingWeatherData) {
				entries = append(entries, Entry{Fecha: fecha, Error: ErrMissingWeatherData.Error()})
				continue
			}
			return nil, err
		}

		entry, err := ComputeForDate(crop, fecha, obs, prev)
		if err != nil {
			if errors.Is(err, ErrDateBeforeSowing) || errors.Is(err, ErrMissingWeatherData) {
				entries = append(entries, Entry{Fecha: fecha, Error: err.Error()})
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
		bucket := entry.AguaDisponible
		prev = &bucket
	}
	return entries, nil
}
