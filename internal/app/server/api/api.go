//GET  /api/v1/health  # Состояние сервиса (публичный)
//POST /api/v1/scan    # Распознать QR-код и создать учетную запись (публичный)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	healthAPI "scanpass/internal/app/server/api/http/health"
	humaMW "scanpass/internal/app/server/api/http/middleware"
	"scanpass/internal/app/server/api/http/middleware/logger"
	scanAPI "scanpass/internal/app/server/api/http/scan"
	domainscan "scanpass/internal/domain/scan"
)

// Deps - зависимости обработчиков. Accounts и DB могут быть nil.
type Deps struct {
	Decoder  domainscan.Decoder
	Accounts scanAPI.AccountRecorder
	DB       healthAPI.Pinger
	Log      *slog.Logger
}

type Handlers struct {
	Health *healthAPI.Handler
	Scan   *scanAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(deps Deps) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(middleware.RequestID, middleware.Recoverer)

	config := huma.DefaultConfig("ScanPass API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(deps)
	h.Health.SetupRoutes(API)
	h.Scan.SetupRoutes(API)

	return mux
}

func handlers(deps Deps) *Handlers {
	loggerMW := logger.New(deps.Log)
	middlewares := humaMW.NewContainer(loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(deps.Log, deps.DB, middlewares.GetAllAndClear())

	scanHandler := scanAPI.NewHandler(deps.Decoder, deps.Accounts, deps.Log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Scan:   scanHandler,
	}
}
