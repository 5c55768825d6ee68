package kromer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kromer-flow-plugin/pkg/apierror"
)

func TestClientGetAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses/kabc123456", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok": true, "address": {"address": "kabc123456", "balance": 42.5}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	addr, err := c.GetAddress(context.Background(), "kabc123456")
	require.NoError(t, err)
	assert.Equal(t, "kabc123456", addr.Address)
	assert.Equal(t, 42.5, addr.Balance)
}

func TestClientErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok": false, "error": "address_not_found", "message": "Address not found"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.GetAddress(context.Background(), "kmissing00")
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ADDRESS_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Address not found", apiErr.Message)
	assert.True(t, apierror.IsNotFound(err))
}

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["privatekey"] == "hunter2" {
			_, _ = w.Write([]byte(`{"ok": true, "authed": true, "address": "kabc123456"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok": true, "authed": false}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	addr, err := c.Login(context.Background(), "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "kabc123456", addr)

	_, err = c.Login(context.Background(), "wrong")
	require.Error(t, err)
}

func TestClientAddressTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses/kabc123456/transactions", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{"ok": true, "total": 37, "transactions": [
			{"id": 5, "from": "kabc123456", "to": "kdef789012", "value": 1.5, "type": "transfer"}
		]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	txs, total, err := c.AddressTransactions(context.Background(), "kabc123456", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 37, total)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(5), txs[0].ID)
}

func TestClientSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hunter2", payload["privatekey"])
		assert.Equal(t, "kdef789012", payload["to"])
		assert.Equal(t, 2.5, payload["amount"])
		assert.Equal(t, "note", payload["metadata"])

		_, _ = w.Write([]byte(`{"ok": true, "transaction": {"id": 99, "value": 2.5}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	tx, err := c.Send(context.Background(), "hunter2", "kdef789012", 2.5, "note")
	require.NoError(t, err)
	assert.Equal(t, int64(99), tx.ID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, clampLimit(0))
	assert.Equal(t, 10, clampLimit(-3))
	assert.Equal(t, 25, clampLimit(25))
	assert.Equal(t, 50, clampLimit(500))
}
