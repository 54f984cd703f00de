// Package main is the entry point for the shift-scheduling engine: a
// one-shot CLI solve by default, or an HTTP trigger under RUN_MODE=serve
// for an external orchestrator to invoke a solve on demand.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/salsaesp/shiftsat/internal/auth"
	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/corerrors"
	"github.com/salsaesp/shiftsat/internal/engine"
	"github.com/salsaesp/shiftsat/internal/export"
	"github.com/salsaesp/shiftsat/internal/model"
	"github.com/salsaesp/shiftsat/internal/normalize"
	"github.com/salsaesp/shiftsat/internal/repository"
	"github.com/salsaesp/shiftsat/internal/tables"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if getEnv("RUN_MODE", "once") == "serve" {
		serve(cfg)
		return
	}

	params := config.DefaultParams()
	calendar, employee, demand, err := loadInput(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scheduling input")
	}

	result, horizon, err := runSolve(log.Logger, params, calendar, employee, demand)
	if err != nil {
		var coreErr *corerrors.CoreError
		if errors.As(err, &coreErr) {
			log.Fatal().Str("kind", string(coreErr.Kind)).Str("diagnostic", coreErr.Diagnostic).Msg(coreErr.Message)
		}
		log.Fatal().Err(err).Msg("solve failed")
	}

	outDir := getEnv("OUTPUT_DIR", ".")
	if err := writeOutputs(result, horizon, outDir, getEnv("OUTPUT_FORMAT", "wide")); err != nil {
		log.Fatal().Err(err).Msg("failed to write schedule output")
	}

	log.Info().Str("status", result.Stats.Status).Float64("objective", result.Stats.ObjectiveValue).Msg("schedule written")
}

// runSolve runs the full C1-C5 pipeline and returns the solved
// schedule and its horizon (needed for wide-format export), logging
// any C1 data-quality warnings along the way.
func runSolve(logger zerolog.Logger, params config.Params, calendar []model.CalendarRow, employee []model.EmployeeRow, demand []model.DemandRow) (*engine.Result, *model.Horizon, error) {
	norm, err := normalize.Normalize(logger, calendar, employee, demand, params)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range norm.Warnings {
		logger.Warn().Int("row", w.Row).Str("column", w.Column).Msg(w.Message)
	}
	result, err := engine.Solve(logger, norm.Input.Horizon, norm.Input.Demand, norm.Input.WorkersComplete, params)
	if err != nil {
		return nil, nil, err
	}
	return result, norm.Input.Horizon, nil
}

// writeOutputs renders the solved schedule as CSV, XLSX and PDF in the
// requested §6.2 table shape (long or wide) under dir.
func writeOutputs(result *engine.Result, horizon *model.Horizon, dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if format == "long" {
		return export.WriteFiles(export.Long(result), dir, "schedule", "Schedule (long)")
	}
	return export.WriteFiles(export.Wide(result, horizon), dir, "schedule", "Schedule")
}

func loadInput(ctx context.Context, cfg *config.Config) ([]model.CalendarRow, []model.EmployeeRow, []model.DemandRow, error) {
	var calendarRaw, employeeRaw, demandRaw tables.RawTable
	var err error

	switch getEnv("INPUT_SOURCE", "csv") {
	case "db":
		db, derr := repository.NewDB(cfg.DatabaseURL)
		if derr != nil {
			return nil, nil, nil, derr
		}
		defer db.Close()

		section := getEnv("SECTION", "")
		if calendarRaw, err = db.LoadCalendar(ctx, section); err != nil {
			return nil, nil, nil, err
		}
		if employeeRaw, err = db.LoadEmployees(ctx, section); err != nil {
			return nil, nil, nil, err
		}
		if demandRaw, err = db.LoadDemand(ctx, section); err != nil {
			return nil, nil, nil, err
		}
	default:
		if calendarRaw, err = tables.LoadCSV(getEnv("CALENDAR_CSV", "calendar.csv")); err != nil {
			return nil, nil, nil, err
		}
		if employeeRaw, err = tables.LoadCSV(getEnv("EMPLOYEE_CSV", "employee.csv")); err != nil {
			return nil, nil, nil, err
		}
		if demandRaw, err = tables.LoadCSV(getEnv("DEMAND_CSV", "demand.csv")); err != nil {
			return nil, nil, nil, err
		}
	}

	calendar, calWarnings, err := tables.ParseCalendarTable(calendarRaw)
	if err != nil {
		return nil, nil, nil, err
	}
	employee, empWarnings, err := tables.ParseEmployeeTable(employeeRaw)
	if err != nil {
		return nil, nil, nil, err
	}
	demand, demWarnings, err := tables.ParseDemandTable(demandRaw)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, w := range append(append(calWarnings, empWarnings...), demWarnings...) {
		log.Warn().Int("row", w.Row).Str("column", w.Column).Msg(w.Message)
	}

	return calendar, employee, demand, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// serve starts the HTTP trigger: a bearer-token-gated endpoint an
// orchestrator calls to run one section's solve on demand.
func serve(cfg *config.Config) {
	jwtManager := auth.NewJWTManager([]byte(cfg.JWT.Secret), "shiftsat", cfg.JWT.Expiry)

	if cfg.IsDevelopment() {
		token, _ := jwtManager.Generate(uuid.New(), "")
		log.Info().Str("token", token).Msg("dev trigger token (Authorization: Bearer <token>)")
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api/v1/schedule", func(r chi.Router) {
		r.Use(requireBearer(jwtManager))
		r.Post("/solve", solveHandler(cfg))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting scheduling trigger server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down trigger server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
}

type solveRequest struct {
	Section string `json:"section"`
	Format  string `json:"format"`
}

type solveResponse struct {
	Status         string  `json:"status"`
	ObjectiveValue float64 `json:"objective_value"`
	WallTimeMs     int64   `json:"wall_time_ms"`
	OutputPath     string  `json:"output_path"`
}

func solveHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req solveRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		if req.Format == "" {
			req.Format = "wide"
		}

		claims, _ := claimsFromContext(r.Context())
		if claims != nil && claims.Section != "" && claims.Section != req.Section {
			http.Error(w, `{"error":"forbidden","message":"token not scoped for this section"}`, http.StatusForbidden)
			return
		}

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			http.Error(w, `{"error":"unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		defer db.Close()

		ctx := r.Context()
		calendarRaw, err := db.LoadCalendar(ctx, req.Section)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		employeeRaw, err := db.LoadEmployees(ctx, req.Section)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		demandRaw, err := db.LoadDemand(ctx, req.Section)
		if err != nil {
			writeSolveError(w, err)
			return
		}

		calendar, _, err := tables.ParseCalendarTable(calendarRaw)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		employee, _, err := tables.ParseEmployeeTable(employeeRaw)
		if err != nil {
			writeSolveError(w, err)
			return
		}
		demand, _, err := tables.ParseDemandTable(demandRaw)
		if err != nil {
			writeSolveError(w, err)
			return
		}

		params := config.DefaultParams()
		result, horizon, err := runSolve(log.Logger, params, calendar, employee, demand)
		if err != nil {
			writeSolveError(w, err)
			return
		}

		outDir := filepath.Join(getEnv("OUTPUT_DIR", "."), req.Section)
		_ = writeOutputs(result, horizon, outDir, req.Format)

		resp := solveResponse{
			Status:         result.Stats.Status,
			ObjectiveValue: result.Stats.ObjectiveValue,
			WallTimeMs:     result.Stats.WallTime.Milliseconds(),
			OutputPath:     outDir,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeSolveError(w http.ResponseWriter, err error) {
	var coreErr *corerrors.CoreError
	if errors.As(err, &coreErr) {
		status := http.StatusUnprocessableEntity
		switch coreErr.Kind {
		case corerrors.KindInputShape, corerrors.KindEmptyIntersection:
			status = http.StatusBadRequest
		case corerrors.KindTimeLimit:
			status = http.StatusGatewayTimeout
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":      string(coreErr.Kind),
			"message":    coreErr.Message,
			"diagnostic": coreErr.Diagnostic,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

type ctxKey int

const claimsCtxKey ctxKey = 0

func requireBearer(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if len(header) < 8 || header[:7] != "Bearer " {
				http.Error(w, `{"error":"unauthorized","message":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			claims, err := jwtManager.Validate(header[7:])
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*auth.Claims)
	return claims, ok
}
