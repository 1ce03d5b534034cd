package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantOrigin string
	}{
		{name: "allowed origin", allowed: []string{"https://app.example.com/"}, method: http.MethodGet, origin: "https://app.example.com", wantStatus: http.StatusTeapot, wantOrigin: "https://app.example.com"},
		{name: "unknown origin", allowed: []string{"https://app.example.com"}, method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusTeapot},
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "https://any.example.com", wantStatus: http.StatusTeapot, wantOrigin: "https://any.example.com"},
		{name: "preflight allowed", allowed: []string{"https://app.example.com"}, method: http.MethodOptions, origin: "https://app.example.com", preflight: true, wantStatus: http.StatusNoContent, wantOrigin: "https://app.example.com"},
		{name: "preflight denied", allowed: nil, method: http.MethodOptions, origin: "https://app.example.com", preflight: true, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/events", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight && tt.wantOrigin != "" {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
