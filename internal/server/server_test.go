package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/brdoc/internal/barcode"
	"github.com/rezonia/brdoc/internal/llm"
	"github.com/rezonia/brdoc/internal/logger"
	"github.com/rezonia/brdoc/internal/processor"
	"github.com/rezonia/brdoc/internal/server"
)

const (
	bankBarcode = "23791987000000100003381260007591540500630620"
	bankLine    = "23793381286000759154205006306202198700000010000"
)

func fixedClock() time.Time {
	return time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)
}

type fakeLLM struct {
	candidates []llm.Candidate
}

func (f *fakeLLM) ExtractFromText(context.Context, string) ([]llm.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeLLM) ExtractFromImage(context.Context, []byte, string) ([]llm.Candidate, error) {
	return f.candidates, nil
}

func newTestServer(opts ...server.Option) *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config, append([]server.Option{server.WithClock(fixedClock)}, opts...)...)
}

func do(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "2024-10-01T12:00:00Z", response["time"])
	assert.Equal(t, false, response["llm"])
}

func TestRequestID(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodGet, "/health", nil)
	_, err := uuid.Parse(w.Header().Get(server.RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.RequestIDHeader, id)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(server.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(server.RequestIDHeader))
}

func TestRequestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	srv := server.NewServer(&server.Config{}, server.WithLogger(log))

	w := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, w.Header().Get(server.RequestIDHeader), entry["request_id"])
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/validate", server.ValidateRequest{
		Value:  "529.982.247-25",
		Values: []string{"23106535000147", "52998224724", bankLine},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response server.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 4, response.Total)
	assert.Equal(t, 3, response.Valid)
	require.Len(t, response.Results, 4)
	assert.Equal(t, "529.982.247-25", response.Results[0].Value)
	assert.True(t, response.Results[0].Valid)
	assert.False(t, response.Results[2].Valid)
	assert.Equal(t, "second CPF check digit is invalid", response.Results[2].Message)
	require.NotNil(t, response.Results[3].Barcode)
	assert.Equal(t, "237", response.Results[3].Barcode.Bank)
}

func TestValidateEndpoint_BadRequests(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/validate", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/v1/validate", server.ValidateRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateIncrementalEndpoint(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name  string
		req   server.IncrementalRequest
		kind  string
		state string
	}{
		{"empty", server.IncrementalRequest{Value: ""}, "cpfcnpj", "empty"},
		{"growing cpf", server.IncrementalRequest{Value: "529.982"}, "cpfcnpj", "growing"},
		{"complete cnpj", server.IncrementalRequest{Value: "23.106.535/0001-47"}, "cpfcnpj", "complete"},
		{"invalid cpf", server.IncrementalRequest{Value: "52998224735", Kind: "cpf"}, "cpf", "invalid"},
		{"growing line", server.IncrementalRequest{Value: "23793.38128 60007"}, "boleto", "growing"},
		{"complete line", server.IncrementalRequest{Value: bankLine, Kind: "BOLETO"}, "boleto", "complete"},
		{"tax prefix", server.IncrementalRequest{Value: "83"}, "boleto", "growing"},
		{"cpf starting with 8", server.IncrementalRequest{Value: "81234567865"}, "cpfcnpj", "complete"},
		{"punctuated cpf starting with 8", server.IncrementalRequest{Value: "812.345.678-65"}, "cpfcnpj", "complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/v1/validate/incremental", tt.req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var response server.IncrementalResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.kind, response.Kind)
			assert.Equal(t, tt.state, response.State)
		})
	}
}

func TestValidateIncrementalEndpoint_Errors(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/validate/incremental", server.IncrementalRequest{Value: "529x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/v1/validate/incremental", server.IncrementalRequest{Value: "1", Kind: "rg"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoletoFormatEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/boleto/format", server.ValueRequest{Value: bankBarcode})
	require.Equal(t, http.StatusOK, w.Code)

	var response server.FormatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, bankLine, response.Line)
	assert.Equal(t, "23793.38128 60007.591542 05006.306202 1 98700000010000", response.Formatted)

	w = do(t, srv, http.MethodPost, "/api/v1/boleto/format", server.ValueRequest{Value: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "invalid length")

	w = do(t, srv, http.MethodPost, "/api/v1/boleto/format", server.ValueRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoletoDeformatEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/boleto/deformat", server.ValueRequest{
		Value: "23793.38128 60007.591542 05006.306202 1 98700000010000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response server.DeformatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, bankBarcode, response.Barcode)
	assert.Equal(t, bankLine, response.Line)

	w = do(t, srv, http.MethodPost, "/api/v1/boleto/deformat", server.ValueRequest{Value: "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoletoInfoEndpoint(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/boleto/info", server.ValueRequest{Value: bankLine})
	require.Equal(t, http.StatusOK, w.Code)

	var info barcode.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "237", info.Bank)
	assert.Equal(t, 9870, info.DueFactor)
	require.NotNil(t, info.DueDate)
	assert.Equal(t, "2024-10-15", info.DueDate.Format(time.DateOnly))
	require.NotNil(t, info.Amount)
	assert.Equal(t, "100", info.Amount.String())

	w = do(t, srv, http.MethodPost, "/api/v1/boleto/info", server.ValueRequest{Value: "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract",
		strings.NewReader("Beneficiário CNPJ 23.106.535/0001-47"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response server.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "text", response.Format)
	assert.Equal(t, "scan", response.Method)
	require.Len(t, response.Findings, 1)
	assert.True(t, response.Findings[0].Valid)
}

func TestExtractEndpoint_Errors(t *testing.T) {
	srv := newTestServer()

	w := do(t, srv, http.MethodPost, "/api/v1/extract", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/v1/extract", []byte{0x00, 0xff, 0xfe, 0x01})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// images need the model
	w = do(t, srv, http.MethodPost, "/api/v1/extract", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExtractEndpoint_Image(t *testing.T) {
	fake := &fakeLLM{candidates: []llm.Candidate{{Value: "529.982.247-25", Kind: "cpf"}}}
	srv := newTestServer(server.WithPipeline(processor.NewPipeline(processor.WithLLMExtractor(fake))))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract",
		bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}))
	req.Header.Set("Content-Type", "image/jpeg")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response server.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "image", response.Format)
	assert.Equal(t, "llm_vision", response.Method)
	require.Len(t, response.Findings, 1)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := server.NewServer(&server.Config{Address: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
