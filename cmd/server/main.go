package main

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/takehiro-dev/costapp/internal/config"
	"github.com/takehiro-dev/costapp/internal/db"
	"github.com/takehiro-dev/costapp/internal/logger"
	"github.com/takehiro-dev/costapp/internal/migrations"
	"github.com/takehiro-dev/costapp/internal/seed"
	"github.com/takehiro-dev/costapp/internal/store"
)

type server struct {
	store *store.Store
	log   zerolog.Logger
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	st, err := store.Open(database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dataset")
	}

	srv := &server{store: st, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(srv.requestLogger)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/master", http.StatusSeeOther)
	})

	r.Get("/master", srv.handleMasterForm)
	r.Post("/master/categories/large", srv.handleLargeCategoryCreate)
	r.Post("/master/categories/medium", srv.handleMediumCategoryCreate)
	r.Post("/master/categories/small", srv.handleSmallCategoryCreate)
	r.Post("/master/materials", srv.handleMaterialCreate)
	r.Post("/master/packaging", srv.handlePackagingItemCreate)
	r.Post("/master/labor", srv.handleLaborRoleCreate)
	r.Post("/master/equipment", srv.handleEquipmentCreate)
	r.Post("/master/shipping", srv.handleShippingMethodCreate)

	r.Get("/products", srv.handleProductsForm)
	r.Post("/products", srv.handleProductCreate)

	r.Get("/costs", srv.handleCostsForm)
	r.Post("/costs/material", srv.handleMaterialEntryCreate)
	r.Post("/costs/packaging", srv.handlePackagingEntryCreate)
	r.Post("/costs/labor", srv.handleLaborEntryCreate)
	r.Post("/costs/outsourcing", srv.handleOutsourcingEntryCreate)
	r.Post("/costs/development", srv.handleDevelopmentEntryCreate)
	r.Post("/costs/equipment", srv.handleEquipmentEntryCreate)
	r.Post("/costs/logistics", srv.handleLogisticsEntryCreate)
	r.Post("/costs/electricity", srv.handleElectricityEntryCreate)

	r.Get("/summary", srv.handleSummary)

	r.Post("/seed", srv.handleSeed)
	r.Post("/reset", srv.handleReset)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *server) handleSeed(w http.ResponseWriter, r *http.Request) {
	stats, err := seed.Run(s.store)
	if err != nil {
		s.log.Error().Err(err).Msg("seed failed")
		http.Error(w, "failed to load sample data", http.StatusInternalServerError)
		return
	}

	if stats.Inserts == 0 {
		http.Redirect(w, r, "/summary?error="+queryMessage("既にデータが登録されているため、デモデータは投入されませんでした"), http.StatusSeeOther)
		return
	}
	s.log.Info().Int("inserts", stats.Inserts).Msg("sample data loaded")
	http.Redirect(w, r, "/summary?success="+queryMessage("デモデータを投入しました"), http.StatusSeeOther)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(); err != nil {
		s.log.Error().Err(err).Msg("reset failed")
		http.Error(w, "failed to reset data", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/master?success="+queryMessage("保存データをクリアしました"), http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to parse template")
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to render template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
