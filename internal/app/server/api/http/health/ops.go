package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) scanStatusOp() huma.Operation {
	return huma.Operation{
		OperationID: "scan-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Scan backend status",
		Description: "Tells the scanpass client whether POST /api/v1/scan can be served. " +
			"Without DATABASE_URI decoded accounts are not persisted and only the scan status is reported.",
		Tags:        []string{"scan"},
		Middlewares: h.middleware,
	}
}
