package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "https://*.run.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.handleRegister)
		api.Post("/auth/login", a.handleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Get("/me", a.handleMe)

			pr.Route("/cultivo", func(cr chi.Router) {
				cr.Get("/", a.handleListCultivos)
				cr.Post("/", a.handleCreateCultivo)
				cr.Get("/info/{tipoCultivo}", a.handleInfoCultivo)
				cr.Get("/user/{username}", a.handleCultivosByUser)
				cr.Get("/user/{username}/active", a.handleActiveCultivosByUser)
				cr.Get("/station/{idEstacion}", a.handleCultivosByStation)
				cr.Get("/{id}", a.handleGetCultivo)
				cr.Put("/{id}", a.handleUpdateCultivo)
				cr.Patch("/{id}/toggle", a.handleToggleCultivo)
				cr.Delete("/{id}", a.handleDeleteCultivo)

				cr.Get("/{id}/balance/hoy", a.handleBalanceHoy)
				cr.Get("/{id}/balance/fecha/{fecha}", a.handleBalanceFecha)
				cr.Get("/{id}/balance/rango", a.handleBalanceRango)
			})

			pr.Route("/data", func(dr chi.Router) {
				dr.Post("/", a.handleCreateObservacion)
				dr.Get("/latest/{idEstacion}", a.handleLatestObservacion)
				dr.Get("/stats/{idEstacion}", a.handleClimateStats)
				dr.Get("/query/{idEstacion}", a.handleQueryObservaciones)
			})
		})
	})

	return r
}
