package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"quotation-backend/config"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	status  models.QuotationStatus
	changes []quotationapimodels.ChangeStateRequest
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(apimodels.NewResponse(data)))
	}
	mux.HandleFunc("GET /cotizacion/1", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, quotationapimodels.FullView{ID: 1, Numero: "COT-000001", Estado: b.status})
	})
	mux.HandleFunc("GET /cotizacion/1/historial", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, []quotationapimodels.HistoryView{
			{EstadoAnterior: models.QuotationInProgress, EstadoNuevo: models.QuotationSent, UsuarioNombre: "Marta", FechaCambio: time.Now()},
			{EstadoAnterior: models.QuotationSent, EstadoNuevo: b.status, UsuarioNombre: "Luis", FechaCambio: time.Now()},
		})
	})
	mux.HandleFunc("PUT /cotizacion/change-state/1", func(w http.ResponseWriter, r *http.Request) {
		var req quotationapimodels.ChangeStateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		b.mu.Lock()
		defer b.mu.Unlock()
		b.changes = append(b.changes, req)
		previous := b.status
		b.status = req.NuevoEstado
		writeJSON(w, quotationapimodels.ChangeStateView{ID: 1, EstadoAnterior: previous, EstadoNuevo: req.NuevoEstado})
	})
	mux.HandleFunc("GET /cotizacion/dashboard-search", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("busqueda")
		writeJSON(w, apimodels.NewPage([]quotationapimodels.DashboardView{{ID: 1, NumeroCotizacion: "COT-000001", ClienteNombre: query}}, 0, 10, 1))
	})
	return mux
}

func customerToken(t *testing.T) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "20",
		"name": "Luis",
		"role": string(models.UserRoleClient),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func setup(t *testing.T, status models.QuotationStatus) (*fakeBackend, []string) {
	backend := &fakeBackend{status: status}
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)
	conf := &config.Configuration{}
	conf.Client.BaseUrl = server.URL
	conf.Client.TimeoutSec = 5
	conf.Workflow.SearchDebounceMs = 350
	config.Conf = conf
	return backend, []string{"-api", server.URL, "-token", customerToken(t)}
}

func TestRun(t *testing.T) {
	t.Run("неизвестная команда", func(t *testing.T) {
		err := run(context.Background(), []string{"drop"}, nil, &bytes.Buffer{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "usage")
	})
	t.Run("клиент принимает отправленную котировку", func(t *testing.T) {
		backend, common := setup(t, models.QuotationSent)
		var out bytes.Buffer
		args := append([]string{"respond"}, append(common, "-id", "1", "-accept")...)
		require.NoError(t, run(context.Background(), args, nil, &out))
		require.Len(t, backend.changes, 1)
		require.Equal(t, models.QuotationAccepted, backend.changes[0].NuevoEstado)
		require.Equal(t, "", backend.changes[0].Observacion)
		require.Equal(t, uint(20), backend.changes[0].UsuarioID)
		require.Contains(t, out.String(), "aceptada")
	})
	t.Run("ответ недоступен вне ENVIADA", func(t *testing.T) {
		backend, common := setup(t, models.QuotationPending)
		args := append([]string{"respond"}, append(common, "-id", "1", "-reject")...)
		err := run(context.Background(), args, nil, &bytes.Buffer{})
		require.Error(t, err)
		require.Empty(t, backend.changes)
	})
	t.Run("без изменений нет вызовов", func(t *testing.T) {
		backend, common := setup(t, models.QuotationPending)
		var out bytes.Buffer
		args := append([]string{"confirm"}, append(common, "-id", "1", "-status", "pendiente")...)
		require.NoError(t, run(context.Background(), args, nil, &out))
		require.Empty(t, backend.changes)
		require.Contains(t, out.String(), "No hay cambios para guardar.")
	})
	t.Run("файл не pdf отклоняется до запроса", func(t *testing.T) {
		_, common := setup(t, models.QuotationInProgress)
		path := t.TempDir() + "/cot.txt"
		require.NoError(t, writeFile(path, []byte("hola")))
		args := append([]string{"attach-pdf"}, append(common, "-id", "1", "-file", path)...)
		err := run(context.Background(), args, nil, &bytes.Buffer{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "pdf")
	})
	t.Run("поиск по последней строке", func(t *testing.T) {
		_, common := setup(t, models.QuotationPending)
		var out bytes.Buffer
		args := append([]string{"search"}, common...)
		require.NoError(t, run(context.Background(), args, strings.NewReader("ac\nacm\nacme\n"), &out))
		require.Contains(t, out.String(), "[acme]")
		require.NotContains(t, out.String(), "[ac]")
	})
}

func writeFile(path string, body []byte) error {
	return os.WriteFile(path, body, 0o600)
}
