package scan

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	domainscan "scanpass/internal/domain/scan"
)

const (
	notRecognizedMessage = "QR Code not recognized"
	scanFailedMessage    = "Scan failed"
)

// AccountRecorder сохраняет созданные учетные записи
type AccountRecorder interface {
	Save(ctx context.Context, res domainscan.Result, requestID string) error
}

type Handler struct {
	decoder    domainscan.Decoder
	accounts   AccountRecorder
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler создает обработчик; accounts может быть nil, тогда результаты не сохраняются
func NewHandler(decoder domainscan.Decoder, accounts AccountRecorder, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		decoder:    decoder,
		accounts:   accounts,
		log:        log.With("component", "scan_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.scanOp(), h.scan)
}

func (h *Handler) scan(ctx context.Context, in *Input) (*Output, error) {
	requestID := in.RequestID
	if requestID == "" {
		requestID = in.Body.RequestID
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := h.log.With("request_id", requestID)

	res, err := h.decoder.Decode(ctx)
	if err != nil {
		if errors.Is(err, domainscan.ErrRecognitionFailure) {
			log.Info("qr code not recognized")
			return nil, huma.Error422UnprocessableEntity(notRecognizedMessage)
		}
		log.Error("decode failed", "error", err)
		return nil, huma.Error500InternalServerError(scanFailedMessage)
	}

	if h.accounts != nil {
		if err := h.accounts.Save(ctx, res, requestID); err != nil {
			log.Error("save account", "account_id", res.AccountID, "error", err)
			return nil, huma.Error500InternalServerError(scanFailedMessage)
		}
	}

	log.Info("account created", "account_id", res.AccountID)
	return &Output{Body: res}, nil
}
