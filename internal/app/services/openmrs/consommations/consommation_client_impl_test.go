package consommations

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/openmrsdto"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindConsommationByID(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Requests Full Representation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/consommation/42", r.URL.Path)
			assert.Equal(t, "full", r.URL.Query().Get("v"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(openmrsdto.Consommation{ConsommationID: 42})
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		consommation, err := client.FindConsommationByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, 42, consommation.ConsommationID)
	})

	t.Run("Error Status Becomes BackendError With Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"message":"no such consommation"}}`))
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		_, err := client.FindConsommationByID(context.Background(), 42)

		var backendErr *exceptions.BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.Equal(t, http.StatusNotFound, backendErr.StatusCode)
		assert.Contains(t, backendErr.Body, "no such consommation")
	})

	t.Run("Unreachable Backend Becomes TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewConsommationClient(server.URL, logger)
		_, err := client.FindConsommationByID(context.Background(), 42)

		var transportErr *exceptions.TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
}

func TestSearchConsommations(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Builds Recovery Query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "7", query.Get("globalBillId"))
			assert.Equal(t, "1", query.Get("limit"))
			assert.Equal(t, "desc", query.Get("order"))
			assert.Equal(t, "full", query.Get("v"))
			json.NewEncoder(w).Encode(openmrsdto.ConsommationListResponse{
				Results: []openmrsdto.Consommation{{ConsommationID: 42}},
			})
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		results, err := client.SearchConsommations(context.Background(), contracts.ConsommationSearchParams{
			GlobalBillID: 7,
			Limit:        1,
			NewestFirst:  true,
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 42, results[0].ConsommationID)
	})

	t.Run("Plain List Omits Paging Params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Empty(t, query.Get("limit"))
			assert.Empty(t, query.Get("order"))
			json.NewEncoder(w).Encode(openmrsdto.ConsommationListResponse{})
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		results, err := client.SearchConsommations(context.Background(), contracts.ConsommationSearchParams{GlobalBillID: 7})

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestCreateConsommation(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Posts JSON Payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/consommation", r.URL.Path)

			var payload openmrsdto.ConsommationCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, 7, payload.GlobalBill.GlobalBillID)
			require.Len(t, payload.BillItems, 1)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(openmrsdto.Consommation{ConsommationID: 42})
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		created, err := client.CreateConsommation(context.Background(), &openmrsdto.ConsommationCreateRequest{
			GlobalBill: openmrsdto.GlobalBillRef{GlobalBillID: 7},
			BillItems: []openmrsdto.BillItemCreation{
				{Service: openmrsdto.ServiceIDRef{ServiceID: 1}, Quantity: 2, UnitPrice: 150.000001},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 42, created.ConsommationID)
	})

	t.Run("Defective Serializer Body Is Preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"ConversionException serializing patientServiceBill"}`))
		}))
		defer server.Close()

		client := NewConsommationClient(server.URL, logger)
		_, err := client.CreateConsommation(context.Background(), &openmrsdto.ConsommationCreateRequest{})

		var backendErr *exceptions.BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.True(t, exceptions.IsAmbiguousCreateFailure(err))
	})
}
