package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Pinger проверяет доступность зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log        *slog.Logger
	db         Pinger
	middleware huma.Middlewares
}

// NewHandler создает обработчик; db может быть nil, если база не настроена
func NewHandler(log *slog.Logger, db Pinger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		db:         db,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.scanStatusOp(), h.scanStatus)
}

func (h *Handler) scanStatus(ctx context.Context, _ *StatusInput) (*StatusOutput, error) {
	h.log.Debug("scan status requested")

	out := &StatusOutput{Body: Status{Scan: StatusOK}}
	if h.db == nil {
		return out, nil
	}

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("account registry ping failed", "error", err)
		out.Body.Scan = StatusDegraded
		out.Body.Accounts = err.Error()
		return out, nil
	}
	out.Body.Accounts = StatusOK
	return out, nil
}
