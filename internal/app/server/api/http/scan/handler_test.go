package scan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainscan "scanpass/internal/domain/scan"
	"scanpass/internal/utils/logger"
)

type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(ctx context.Context) (domainscan.Result, error) {
	args := m.Called(ctx)
	return args.Get(0).(domainscan.Result), args.Error(1)
}

type MockAccountRecorder struct {
	mock.Mock
}

func (m *MockAccountRecorder) Save(ctx context.Context, res domainscan.Result, requestID string) error {
	return m.Called(ctx, res, requestID).Error(0)
}

var sample = domainscan.Result{
	Name:      "John Doe",
	Email:     "john.doe@example.com",
	AccountID: "ACC-1700000000000",
	Timestamp: "2023-11-14T22:13:20.000Z",
}

func TestHandler_Scan(t *testing.T) {
	tests := []struct {
		name         string
		decodeErr    error
		saveErr      error
		withRecorder bool
		wantCode     int
		wantDetail   string
	}{
		{name: "success without recorder", wantCode: http.StatusOK},
		{name: "success with recorder", withRecorder: true, wantCode: http.StatusOK},
		{
			name:       "not recognized",
			decodeErr:  domainscan.ErrRecognitionFailure,
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "QR Code not recognized",
		},
		{
			name:       "decoder broken",
			decodeErr:  errors.New("boom"),
			wantCode:   http.StatusInternalServerError,
			wantDetail: "Scan failed",
		},
		{
			name:         "recorder fails",
			withRecorder: true,
			saveErr:      errors.New("db down"),
			wantCode:     http.StatusInternalServerError,
			wantDetail:   "Scan failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := new(MockDecoder)
			decoder.On("Decode", mock.Anything).Return(sample, tt.decodeErr)

			var recorder AccountRecorder
			rec := new(MockAccountRecorder)
			if tt.withRecorder {
				rec.On("Save", mock.Anything, sample, "req-1").Return(tt.saveErr)
				recorder = rec
			}

			_, api := humatest.New(t)
			NewHandler(decoder, recorder, logger.Discard(), nil).SetupRoutes(api)

			resp := api.Post("/api/v1/scan", "X-Request-ID: req-1", map[string]any{})
			require.Equal(t, tt.wantCode, resp.Code, resp.Body.String())

			if tt.wantCode == http.StatusOK {
				var got domainscan.Result
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
				assert.Equal(t, sample, got)
			} else {
				var problem struct {
					Detail string `json:"detail"`
				}
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
				assert.Equal(t, tt.wantDetail, problem.Detail)
			}

			decoder.AssertExpectations(t)
			if tt.withRecorder && tt.decodeErr == nil {
				rec.AssertExpectations(t)
			}
		})
	}
}

func TestHandler_Scan_RequestIDFromBody(t *testing.T) {
	decoder := new(MockDecoder)
	decoder.On("Decode", mock.Anything).Return(sample, nil)
	rec := new(MockAccountRecorder)
	rec.On("Save", mock.Anything, sample, "body-id").Return(nil)

	_, api := humatest.New(t)
	NewHandler(decoder, rec, logger.Discard(), nil).SetupRoutes(api)

	resp := api.Post("/api/v1/scan", map[string]any{"requestId": "body-id"})
	require.Equal(t, http.StatusOK, resp.Code)
	rec.AssertExpectations(t)
}

func TestHandler_Scan_SimulatedDecoder(t *testing.T) {
	decoder := domainscan.NewSimulatedDecoder(0, 1)

	_, api := humatest.New(t)
	NewHandler(decoder, nil, logger.Discard(), nil).SetupRoutes(api)

	resp := api.Post("/api/v1/scan", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
