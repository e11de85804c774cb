package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDailyBalance_Clamping(t *testing.T) {
	const fc, wp = 150.0, 70.0

	tests := []struct {
		name                string
		previo, precip, etc float64
		bucket, diario      float64
	}{
		{"normal depletion", 150, 0, 10, 140, -10},
		{"rain gain", 100, 20, 5, 115, 15},
		{"excess rain drains", 145, 30, 2, 150, 28},
		{"cannot fall below wilting point", 72, 0, 10, 70, -10},
		{"already at wilting point", 70, 0, 5, 70, -5},
		{"zero movement", 120, 8, 8, 120, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, diario := ApplyDailyBalance(tt.previo, fc, wp, tt.precip, tt.etc)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.diario, diario)
		})
	}
}

func TestApplyDailyBalance_InvariantHolds(t *testing.T) {
	const fc, wp = 200.0, 100.0
	// Sweep a grid of states and inputs; the bucket must stay in range.
	for previo := wp; previo <= fc; previo += 10 {
		for precip := 0.0; precip <= 60; precip += 15 {
			for etc := 0.0; etc <= 60; etc += 15 {
				bucket, _ := ApplyDailyBalance(previo, fc, wp, precip, etc)
				assert.GreaterOrEqual(t, bucket, wp)
				assert.LessOrEqual(t, bucket, fc)

				pct := AvailableWaterPct(bucket, fc, wp)
				assert.GreaterOrEqual(t, pct, 0.0)
				assert.LessOrEqual(t, pct, 100.0)
			}
		}
	}
}

func TestAvailableWaterPct(t *testing.T) {
	assert.InDelta(t, 87.5, AvailableWaterPct(140, 150, 70), 1e-9)
	assert.InDelta(t, 18.75, AvailableWaterPct(85, 150, 70), 1e-9)
	assert.Equal(t, 0.0, AvailableWaterPct(70, 150, 70))
	assert.Equal(t, 100.0, AvailableWaterPct(150, 150, 70))
}

func TestClassifyStress_Thresholds(t *testing.T) {
	tests := []struct {
		pct   float64
		level StressLevel
	}{
		{100, SinEstres},
		{70, SinEstres},
		{69.99, EstresLeve},
		{50, EstresLeve},
		{49.99, EstresModerado},
		{30, EstresModerado},
		{29.99, EstresSevero},
		{0, EstresSevero},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, ClassifyStress(tt.pct), "pct %.2f", tt.pct)
	}
}

func TestRecommend_NoIrrigationAboveThreshold(t *testing.T) {
	r := Recommend(140, 150, 70, 2) // 87.5% available
	assert.Equal(t, 0.0, r.LaminaMM)
	assert.Equal(t, 0.0, r.VolumenM3)
	assert.Equal(t, "No se requiere riego", r.Texto)
}

func TestRecommend_SevereDeficit(t *testing.T) {
	// bucket 85 of [70,150] -> 18.75% available, severe stress
	r := Recommend(85, 150, 70, 2)
	assert.Equal(t, 65.0, r.LaminaMM)
	assert.Equal(t, 1300.0, r.VolumenM3) // 65 mm * 2 ha * 10
	assert.Equal(t, "Riego urgente: reponer el déficit hídrico", r.Texto)
}

func TestRecommend_ModerateDeficit(t *testing.T) {
	// bucket 102 of [70,150] -> 40% available, moderate stress
	r := Recommend(102, 150, 70, 1)
	assert.Equal(t, 48.0, r.LaminaMM)
	assert.Equal(t, 480.0, r.VolumenM3)
	assert.Equal(t, "Se recomienda regar para reponer el déficit", r.Texto)
}
