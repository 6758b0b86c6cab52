package branddev

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-api-key", WithBaseURL(srv.URL))
}

func TestBrand(t *testing.T) {
	tests := []struct {
		name         string
		handler      http.HandlerFunc
		wantBody     string
		wantNotFound bool
		wantAPIErr   bool
		wantStatus   int
	}{
		{
			name: "happy path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/brand/retrieve", r.URL.Path)
				assert.Equal(t, "acme.com", r.URL.Query().Get("domain"))
				assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"brand":{"title":"Acme"}}`))
			},
			wantBody: `{"brand":{"title":"Acme"}}`,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"unknown domain"}`))
			},
			wantNotFound: true,
		},
		{
			name: "auth error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"bad key"}`))
			},
			wantAPIErr: true,
			wantStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.handler)
			data, err := c.Brand(context.Background(), "acme.com")

			if tt.wantNotFound {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			if tt.wantAPIErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantBody, string(data))
		})
	}
}
