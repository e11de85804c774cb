package balance

import (
	"context"
	"errors"
	"testing"

	"agroclima/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup serves observations from a fixed map keyed by date string.
func mapLookup(days map[string]models.Observation) ObservationLookup {
	return func(_ context.Context, _ string, fecha models.Fecha) (models.Observation, error) {
		obs, ok := days[fecha.String()]
		if !ok {
			return models.Observation{}, ErrMissingWeatherData
		}
		return obs, nil
	}
}

func TestComputeRange_BucketContinuity(t *testing.T) {
	crop := testCrop()
	inicio, _ := models.ParseFecha("2024-01-02")
	fin, _ := models.ParseFecha("2024-01-04")

	days := map[string]models.Observation{
		"2024-01-02": obsWithET0(20, 0), // ETc 10
		"2024-01-03": obsWithET0(20, 0),
		"2024-01-04": obsWithET0(20, 5),
	}

	entries, err := ComputeRange(context.Background(), crop, inicio, fin, mapLookup(days))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 150 -> 140 -> 130 -> 125 (day 3 gets 5 mm of rain)
	assert.Equal(t, 140.0, entries[0].AguaDisponible)
	assert.Equal(t, 130.0, entries[1].AguaDisponible)
	assert.Equal(t, 125.0, entries[2].AguaDisponible)

	// Each day's input bucket is the previous day's output.
	for i := 1; i < len(entries); i++ {
		prev := &entries[i-1].AguaDisponible
		recomputed, err := ComputeForDate(crop, entries[i].Fecha, days[entries[i].Fecha.String()], prev)
		require.NoError(t, err)
		assert.Equal(t, recomputed, entries[i])
	}
}

func TestComputeRange_SingleDayMatchesComputeForDate(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-02")
	obs := obsWithET0(20, 0)

	entries, err := ComputeRange(context.Background(), crop, fecha, fecha,
		mapLookup(map[string]models.Observation{"2024-01-02": obs}))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	single, err := ComputeForDate(crop, fecha, obs, nil)
	require.NoError(t, err)
	assert.Equal(t, single, entries[0])
}

func TestComputeRange_MissingDayKeepsContinuity(t *testing.T) {
	crop := testCrop()
	inicio, _ := models.ParseFecha("2024-01-02")
	fin, _ := models.ParseFecha("2024-01-04")

	days := map[string]models.Observation{
		"2024-01-02": obsWithET0(20, 0),
		// 2024-01-03 has no weather record
		"2024-01-04": obsWithET0(20, 0),
	}

	entries, err := ComputeRange(context.Background(), crop, inicio, fin, mapLookup(days))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 140.0, entries[0].AguaDisponible)
	assert.NotEmpty(t, entries[1].Error)
	assert.Equal(t, "2024-01-03", entries[1].Fecha.String())

	// The gap does not reset the bucket: day 3 resumes from day 1's level.
	assert.Empty(t, entries[2].Error)
	assert.Equal(t, 130.0, entries[2].AguaDisponible)
}

func TestComputeRange_DayBeforeSowingIsMarked(t *testing.T) {
	crop := testCrop() // sown 2024-01-01
	inicio, _ := models.ParseFecha("2023-12-31")
	fin, _ := models.ParseFecha("2024-01-01")

	days := map[string]models.Observation{
		"2023-12-31": obsWithET0(20, 0),
		"2024-01-01": obsWithET0(20, 0),
	}

	entries, err := ComputeRange(context.Background(), crop, inicio, fin, mapLookup(days))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].Error)
	assert.Empty(t, entries[1].Error)
	assert.Equal(t, 0, entries[1].DiasDesdeSiembra)
}

func TestComputeRange_InvalidRange(t *testing.T) {
	crop := testCrop()
	inicio, _ := models.ParseFecha("2024-02-01")
	fin, _ := models.ParseFecha("2024-01-01")

	_, err := ComputeRange(context.Background(), crop, inicio, fin, mapLookup(nil))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestComputeRange_TransientLookupErrorAborts(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-02")
	boom := errors.New("mongo: network timeout")

	_, err := ComputeRange(context.Background(), crop, fecha, fecha,
		func(context.Context, string, models.Fecha) (models.Observation, error) {
			return models.Observation{}, boom
		})
	assert.ErrorIs(t, err, boom)
}

func TestComputeRange_AllDaysMissing(t *testing.T) {
	crop := testCrop()
	inicio, _ := models.ParseFecha("2024-01-02")
	fin, _ := models.ParseFecha("2024-01-04")

	entries, err := ComputeRange(context.Background(), crop, inicio, fin, mapLookup(nil))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotEmpty(t, e.Error)
	}
}
