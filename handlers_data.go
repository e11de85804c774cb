package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agroclima/models"

	"github.com/go-chi/chi/v5"
	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// handleCreateObservacion upserts one day of station weather, keyed by
// (idEstacion, fecha). Re-ingesting the same day overlays only the values
// the new payload actually carries, so a logger can fill in metrics that a
// manual upload left empty.
func (a *App) handleCreateObservacion(w http.ResponseWriter, r *http.Request) {
	var req observacionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.IDEstacion) == "" || req.Fecha == nil {
		http.Error(w, "idEstacion and fecha are required", http.StatusBadRequest)
		return
	}
	if req.Precipitacion < 0 {
		http.Error(w, "precipitacion must be >= 0", http.StatusBadRequest)
		return
	}
	if req.ET0 != nil && *req.ET0 < 0 {
		http.Error(w, "et0 must be >= 0", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	filter := bson.M{"idEstacion": req.IDEstacion, "fecha": req.Fecha.Time}

	var existing models.Observation
	err := a.observaciones.FindOne(ctx, filter).Decode(&existing)
	obs := models.Observation{
		IDEstacion:    req.IDEstacion,
		Fecha:         *req.Fecha,
		Precipitacion: req.Precipitacion,
	}
	if err == nil {
		obs = mergeObservacion(existing, req)
	} else {
		obs.ET0 = req.ET0
		obs.TempMax = req.TempMax
		obs.TempMin = req.TempMin
		obs.HumedadPct = req.HumedadPct
		obs.VientoMps = req.VientoMps
		obs.RadiacionMJm2 = req.RadiacionMJm2
	}

	res := a.observaciones.FindOneAndReplace(
		ctx,
		filter,
		&obs,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	)
	var out models.Observation
	if err := res.Decode(&out); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(out)
}

// mergeObservacion overlays the incoming payload onto the stored day,
// keeping stored values the payload does not carry.
func mergeObservacion(curr models.Observation, in observacionReq) models.Observation {
	out := curr
	out.Precipitacion = in.Precipitacion
	if in.ET0 != nil {
		out.ET0 = in.ET0
	}
	if in.TempMax != nil {
		out.TempMax = in.TempMax
	}
	if in.TempMin != nil {
		out.TempMin = in.TempMin
	}
	if in.HumedadPct != nil {
		out.HumedadPct = in.HumedadPct
	}
	if in.VientoMps != nil {
		out.VientoMps = in.VientoMps
	}
	if in.RadiacionMJm2 != nil {
		out.RadiacionMJm2 = in.RadiacionMJm2
	}
	return out
}

// handleQueryObservaciones returns a station's observations between
// startDate and endDate inclusive, ascending by date.
func (a *App) handleQueryObservaciones(w http.ResponseWriter, r *http.Request) {
	idEstacion := chi.URLParam(r, "idEstacion")
	inicio, err := models.ParseFecha(r.URL.Query().Get("startDate"))
	if err != nil {
		http.Error(w, "bad startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	fin, err := models.ParseFecha(r.URL.Query().Get("endDate"))
	if err != nil {
		http.Error(w, "bad endDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if inicio.After(fin.Time) {
		http.Error(w, "startDate must not be after endDate", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.observaciones.Find(ctx,
		bson.M{
			"idEstacion": idEstacion,
			"fecha":      bson.M{"$gte": inicio.Time, "$lte": fin.Time},
		},
		options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}}),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	out := []models.Observation{}
	if err := cur.All(ctx, &out); err != nil {
		http.Error(w, "decode error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleLatestObservacion returns the most recent day on record for a station.
func (a *App) handleLatestObservacion(w http.ResponseWriter, r *http.Request) {
	idEstacion := chi.URLParam(r, "idEstacion")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var obs models.Observation
	err := a.observaciones.FindOne(ctx,
		bson.M{"idEstacion": idEstacion},
		options.FindOne().SetSort(bson.D{{Key: "fecha", Value: -1}}),
	).Decode(&obs)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(obs)
}

// handleClimateStats summarizes a station's last N days (default 30,
// ?dias=N to override): mean/min/max/standard deviation per metric plus
// total precipitation.
func (a *App) handleClimateStats(w http.ResponseWriter, r *http.Request) {
	idEstacion := chi.URLParam(r, "idEstacion")
	dias := 30
	if v := r.URL.Query().Get("dias"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "dias must be a positive integer", http.StatusBadRequest)
			return
		}
		dias = n
	}

	desde := models.NewFecha(time.Now()).AddDays(-dias + 1)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.observaciones.Find(ctx, bson.M{
		"idEstacion": idEstacion,
		"fecha":      bson.M{"$gte": desde.Time},
	})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var obs []models.Observation
	if err := cur.All(ctx, &obs); err != nil {
		http.Error(w, "decode error", http.StatusInternalServerError)
		return
	}

	var precip, tmax, tmin, et0 []float64
	for _, o := range obs {
		precip = append(precip, o.Precipitacion)
		if o.TempMax != nil {
			tmax = append(tmax, *o.TempMax)
		}
		if o.TempMin != nil {
			tmin = append(tmin, *o.TempMin)
		}
		if o.ET0 != nil {
			et0 = append(et0, *o.ET0)
		}
	}

	resp := climateStatsResp{
		IDEstacion:    idEstacion,
		Dias:          dias,
		Precipitacion: summarize(precip),
		TempMax:       summarize(tmax),
		TempMin:       summarize(tmin),
		ET0:           summarize(et0),
	}
	if total, err := stats.Sum(precip); err == nil {
		resp.PrecipitacionTotal = total
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// summarize computes the summary block for one metric; nil when there is
// no data, which the response omits.
func summarize(values []float64) *metricStats {
	if len(values) == 0 {
		return nil
	}
	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	sd, _ := stats.StandardDeviation(values)
	return &metricStats{
		Media:      mean,
		Min:        min,
		Max:        max,
		Desviacion: sd,
		Muestras:   len(values),
	}
}
