package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"agroclima/balance"
	"agroclima/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// observationLookup adapts the observaciones collection to the engine's
// lookup contract. A missing document becomes ErrMissingWeatherData; any
// other Mongo failure is returned as-is and aborts the computation.
func (a *App) observationLookup() balance.ObservationLookup {
	return func(ctx context.Context, idEstacion string, fecha models.Fecha) (models.Observation, error) {
		var obs models.Observation
		err := a.observaciones.FindOne(ctx, bson.M{"idEstacion": idEstacion, "fecha": fecha.Time}).Decode(&obs)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.Observation{}, balance.ErrMissingWeatherData
			}
			return models.Observation{}, err
		}
		return obs, nil
	}
}

// handleBalanceHoy computes today's water balance for a crop.
func (a *App) handleBalanceHoy(w http.ResponseWriter, r *http.Request) {
	a.balanceForDate(w, r, models.NewFecha(time.Now()))
}

// handleBalanceFecha computes the water balance for an explicit date.
func (a *App) handleBalanceFecha(w http.ResponseWriter, r *http.Request) {
	fecha, err := models.ParseFecha(chi.URLParam(r, "fecha"))
	if err != nil {
		http.Error(w, "bad fecha, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	a.balanceForDate(w, r, fecha)
}

// balanceForDate runs the engine for a single day. Engine failures are
// reported as a 200 body with an error field — the dashboard renders that
// message in place of the numeric cards.
func (a *App) balanceForDate(w http.ResponseWriter, r *http.Request, fecha models.Fecha) {
	c, ok := a.findCultivo(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	obs, err := a.observationLookup()(ctx, c.IDEstacion, fecha)
	if err != nil {
		if errors.Is(err, balance.ErrMissingWeatherData) {
			_ = json.NewEncoder(w).Encode(balanceError{Error: err.Error()})
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	// No prior bucket is persisted: a single-day query assumes the field
	// at capacity the day before (same assumption a fresh range makes).
	entry, err := balance.ComputeForDate(c, fecha, obs, nil)
	if err != nil {
		_ = json.NewEncoder(w).Encode(balanceError{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(entry)
}

// handleBalanceRango replays the balance over a date range, carrying the
// bucket forward day to day. Days without weather data come back as
// error-marked entries; the series is never silently interpolated.
func (a *App) handleBalanceRango(w http.ResponseWriter, r *http.Request) {
	c, ok := a.findCultivo(w, r)
	if !ok {
		return
	}

	inicio, err := models.ParseFecha(r.URL.Query().Get("fechaInicio"))
	if err != nil {
		http.Error(w, "bad fechaInicio, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	fin, err := models.ParseFecha(r.URL.Query().Get("fechaFin"))
	if err != nil {
		http.Error(w, "bad fechaFin, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	entries, err := balance.ComputeRange(ctx, c, inicio, fin, a.observationLookup())
	if err != nil {
		if errors.Is(err, balance.ErrInvalidDateRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(entries)
}
