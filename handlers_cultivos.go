package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"agroclima/balance"
	"agroclima/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cultivoFromReq validates the crop form and builds the document. Soil
// water constants fall back to the soil type's defaults when omitted; an
// explicit capacity at or below the wilting point is rejected.
func cultivoFromReq(req cultivoReq, username string) (models.Crop, string) {
	if strings.TrimSpace(req.NombreCultivo) == "" {
		return models.Crop{}, "nombreCultivo is required"
	}
	if !req.TipoCultivo.Valid() {
		return models.Crop{}, "unknown tipoCultivo"
	}
	if strings.TrimSpace(req.IDEstacion) == "" {
		return models.Crop{}, "idEstacion is required"
	}
	if req.FechaSiembra == nil {
		return models.Crop{}, "fechaSiembra is required"
	}
	if req.AreaHectareas <= 0 {
		return models.Crop{}, "areaHectareas must be > 0"
	}
	defaults, err := balance.DefaultsFor(req.TipoSuelo)
	if err != nil {
		return models.Crop{}, "unknown tipoSuelo"
	}

	cc := defaults.CapacidadCampo
	if req.CapacidadCampo != nil {
		cc = *req.CapacidadCampo
	}
	pm := defaults.PuntoMarchitez
	if req.PuntoMarchitez != nil {
		pm = *req.PuntoMarchitez
	}
	if cc <= pm {
		return models.Crop{}, "capacidadCampo must be greater than puntoMarchitez"
	}

	c := models.Crop{
		Username:             username,
		Nombre:               req.NombreCultivo,
		Tipo:                 req.TipoCultivo,
		IDEstacion:           req.IDEstacion,
		NombreEstacion:       req.NombreEstacion,
		FechaSiembra:         *req.FechaSiembra,
		FechaCosechaEstimada: req.FechaCosechaEstimada,
		AreaHectareas:        req.AreaHectareas,
		TipoSuelo:            req.TipoSuelo,
		CapacidadCampo:       cc,
		PuntoMarchitez:       pm,
		IsActive:             true,
		Notas:                req.Notas,
	}
	if req.ProfundidadRaices != nil {
		c.ProfundidadRaices = *req.ProfundidadRaices
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c, ""
}

// handleCreateCultivo inserts a new crop after validating the form.
func (a *App) handleCreateCultivo(w http.ResponseWriter, r *http.Request) {
	auth := mustAuth(r)

	var req cultivoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	username := auth.Username
	if req.Username != "" {
		username = req.Username
	}

	c, msg := cultivoFromReq(req, username)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	c.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := a.cultivos.InsertOne(ctx, &c)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// handleListCultivos returns every crop, newest first.
func (a *App) handleListCultivos(w http.ResponseWriter, r *http.Request) {
	a.listCultivos(w, r, bson.M{})
}

// handleCultivosByUser returns all crops registered under a username.
func (a *App) handleCultivosByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	a.listCultivos(w, r, bson.M{"username": username})
}

// handleActiveCultivosByUser returns only the active crops of a username.
func (a *App) handleActiveCultivosByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	a.listCultivos(w, r, bson.M{"username": username, "isActive": true})
}

// handleCultivosByStation returns the crops reading from a station.
func (a *App) handleCultivosByStation(w http.ResponseWriter, r *http.Request) {
	idEstacion := chi.URLParam(r, "idEstacion")
	a.listCultivos(w, r, bson.M{"idEstacion": idEstacion})
}

func (a *App) listCultivos(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.cultivos.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	out := []models.Crop{}
	if err := cur.All(ctx, &out); err != nil {
		http.Error(w, "decode error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleGetCultivo returns a single crop by id.
func (a *App) handleGetCultivo(w http.ResponseWriter, r *http.Request) {
	c, ok := a.findCultivo(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(c)
}

// handleInfoCultivo returns the static stage table for a crop type.
func (a *App) handleInfoCultivo(w http.ResponseWriter, r *http.Request) {
	tipo := models.CropType(chi.URLParam(r, "tipoCultivo"))
	p, err := balance.ProfileFor(tipo)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(bson.M{
		"tipoCultivo":   p.Tipo,
		"etapas":        p.Etapas,
		"duracionTotal": p.TotalDias(),
	})
}

// handleUpdateCultivo replaces the editable fields of a crop. The
// dashboard always submits the full form, so this validates like create.
func (a *App) handleUpdateCultivo(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var req cultivoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	auth := mustAuth(r)
	username := auth.Username
	if req.Username != "" {
		username = req.Username
	}
	c, msg := cultivoFromReq(req, username)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	set := bson.M{
		"nombreCultivo":  c.Nombre,
		"tipoCultivo":    c.Tipo,
		"idEstacion":     c.IDEstacion,
		"nombreEstacion": c.NombreEstacion,
		"fechaSiembra":   c.FechaSiembra,
		"areaHectareas":  c.AreaHectareas,
		"tipoSuelo":      c.TipoSuelo,
		"capacidadCampo": c.CapacidadCampo,
		"puntoMarchitez": c.PuntoMarchitez,
		"isActive":       c.IsActive,
		"notas":          c.Notas,
	}
	if c.FechaCosechaEstimada != nil {
		set["fechaCosechaEstimada"] = c.FechaCosechaEstimada
	}
	if c.ProfundidadRaices > 0 {
		set["profundidadRaices"] = c.ProfundidadRaices
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res := a.cultivos.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var out models.Crop
	if err := res.Decode(&out); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleToggleCultivo flips the active flag (soft removal).
func (a *App) handleToggleCultivo(w http.ResponseWriter, r *http.Request) {
	c, ok := a.findCultivo(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res := a.cultivos.FindOneAndUpdate(
		ctx,
		bson.M{"_id": c.ID},
		bson.M{"$set": bson.M{"isActive": !c.IsActive}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var out models.Crop
	if err := res.Decode(&out); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleDeleteCultivo removes a crop by id.
func (a *App) handleDeleteCultivo(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := a.cultivos.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(bson.M{"ok": true})
}

// findCultivo loads the crop addressed by the {id} URL param, writing the
// HTTP error itself when the id is bad or the crop does not exist.
func (a *App) findCultivo(w http.ResponseWriter, r *http.Request) (models.Crop, bool) {
	idStr := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return models.Crop{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var c models.Crop
	if err := a.cultivos.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return models.Crop{}, false
	}
	return c, true
}
