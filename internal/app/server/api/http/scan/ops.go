package scan

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) scanOp() huma.Operation {
	return huma.Operation{
		OperationID:   "scan-decode",
		Method:        http.MethodPost,
		Path:          "/api/v1/scan",
		Summary:       "Decode a QR code frame",
		Description:   "Decodes the submitted frame and returns the account it encodes. Responds 422 when the code is not recognized.",
		Tags:          []string{"scan"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
		Middlewares:   h.middleware,
	}
}
