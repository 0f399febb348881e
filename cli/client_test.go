package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-service-secret"

func TestClient_TriggerJobSignsServiceToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/internal/v1/jobs/refresh-cycle", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","type":"scheduled_feed_refresh","status":"pending","tries":0,"created_at":"2026-08-26T10:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testSecret, 5*time.Second)
	record, err := client.TriggerJob(context.Background(), "refresh-cycle")
	require.NoError(t, err)
	assert.Equal(t, "pending", string(record.Status))

	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	raw := strings.TrimPrefix(gotAuth, "Bearer ")

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithAudience(serviceAudience),
		jwt.WithIssuer(serviceIssuer),
		jwt.WithExpirationRequired(),
	)
	require.NoError(t, err)
	assert.LessOrEqual(t, claims.ExpiresAt.Sub(claims.IssuedAt.Time), 5*time.Minute)
}

func TestClient_TriggerJobWithoutSecret(t *testing.T) {
	client := NewClient("http://localhost:0", "", time.Second)

	_, err := client.TriggerJob(context.Background(), "refresh-cycle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVICE_TOKEN_SECRET")
}

func TestClient_HealthDegradedStillReturnsReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded","checks":{"postgres":"ok","redis":"connection refused"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	report, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "connection refused", report.Checks["redis"])
}

func TestClient_SurfacesServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad request","code":"VALIDATION_ERROR","message":"unknown or non-triggerable job type"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testSecret, 5*time.Second)
	_, err := client.TriggerJob(context.Background(), "fabricate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown or non-triggerable job type")
}
