package balance

import (
	"encoding/json"
	"testing"

	"agroclima/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCrop() models.Crop {
	siembra, _ := models.ParseFecha("2024-01-01")
	return models.Crop{
		Nombre:         "Papa Lote 1",
		Tipo:           models.CropPapa,
		IDEstacion:     "EST-001",
		FechaSiembra:   siembra,
		AreaHectareas:  2,
		TipoSuelo:      models.SoilFranco,
		CapacidadCampo: 150,
		PuntoMarchitez: 70,
		IsActive:       true,
	}
}

func obsWithET0(et0, precip float64) models.Observation {
	return models.Observation{IDEstacion: "EST-001", Precipitacion: precip, ET0: &et0}
}

func TestComputeForDate_FreshBucket(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-02") // day 1, stage inicial, Kc 0.5

	// ET0 20 x Kc 0.5 = ETc 10, no rain: 150 -> 140, 87.5% available.
	entry, err := ComputeForDate(crop, fecha, obsWithET0(20, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, entry.DiasDesdeSiembra)
	assert.Equal(t, "inicial", entry.EtapaActual)
	assert.Equal(t, 0.5, entry.Kc)
	assert.Equal(t, 20.0, entry.ET0)
	assert.Equal(t, 10.0, entry.ETc)
	assert.Equal(t, -10.0, entry.BalanceDiario)
	assert.Equal(t, 140.0, entry.AguaDisponible)
	assert.Equal(t, 87.5, entry.PorcentajeAgua)
	assert.Equal(t, SinEstres, entry.NivelEstres)
	assert.Equal(t, 0.0, entry.RiegoNecesarioMM)
	assert.Equal(t, 0.0, entry.VolumenRiegoM3)
	assert.Empty(t, entry.Error)
}

func TestComputeForDate_SevereStressRecommendsIrrigation(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-10")

	// Carried bucket depleted to 95; ETc 10 brings it to 85 -> 18.75%.
	prev := 95.0
	entry, err := ComputeForDate(crop, fecha, obsWithET0(20, 0), &prev)
	require.NoError(t, err)

	assert.Equal(t, 85.0, entry.AguaDisponible)
	assert.Equal(t, 18.75, entry.PorcentajeAgua)
	assert.Equal(t, EstresSevero, entry.NivelEstres)
	assert.Equal(t, 65.0, entry.RiegoNecesarioMM) // refill to field capacity
	assert.Equal(t, 1300.0, entry.VolumenRiegoM3) // 65 mm x 2 ha x 10
}

func TestComputeForDate_Idempotent(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-03-15")
	obs := obsWithET0(4.5, 2.3)

	a, err := ComputeForDate(crop, fecha, obs, nil)
	require.NoError(t, err)
	b, err := ComputeForDate(crop, fecha, obs, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeForDate_DateBeforeSowing(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2023-12-31")
	_, err := ComputeForDate(crop, fecha, obsWithET0(5, 0), nil)
	assert.ErrorIs(t, err, ErrDateBeforeSowing)
}

func TestComputeForDate_UnknownTypes(t *testing.T) {
	fecha, _ := models.ParseFecha("2024-01-02")

	crop := testCrop()
	crop.Tipo = "banano"
	_, err := ComputeForDate(crop, fecha, obsWithET0(5, 0), nil)
	assert.ErrorIs(t, err, ErrUnknownCropType)

	crop = testCrop()
	crop.TipoSuelo = "turba"
	_, err = ComputeForDate(crop, fecha, obsWithET0(5, 0), nil)
	assert.ErrorIs(t, err, ErrUnknownSoilType)
}

func TestComputeForDate_MissingWeather(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-02")
	_, err := ComputeForDate(crop, fecha, models.Observation{Precipitacion: 3}, nil)
	assert.ErrorIs(t, err, ErrMissingWeatherData)
}

func TestEntry_WireFieldNames(t *testing.T) {
	crop := testCrop()
	fecha, _ := models.ParseFecha("2024-01-02")
	entry, err := ComputeForDate(crop, fecha, obsWithET0(20, 0), nil)
	require.NoError(t, err)

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{
		"fecha", "diasDesdeSiembra", "etapaActual", "kc", "et0",
		"precipitacion", "etc", "balanceDiario", "porcentajeAgua",
		"nivelEstres", "recomendacion", "riegoNecesario_mm", "volumenRiego_m3",
	} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "2024-01-02", m["fecha"])
	assert.NotContains(t, m, "error")
}
