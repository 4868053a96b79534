package router_test

import (
	"net/http"
	"testing"

	"github.com/condofacil/backend/internal/router"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func TestGetRoot(t *testing.T) {
	t.Setenv("API_URL", "http://example.com")

	recorder := test.Request(t, http.MethodGet, "http://example.com/", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response router.RootResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "http://example.com/v1", response.Links.V1)
	assert.Equal(t, "http://example.com/healthz", response.Links.Healthz)
}

func TestGetVersion(t *testing.T) {
	t.Setenv("API_URL", "http://example.com")

	recorder := test.Request(t, http.MethodGet, "http://example.com/version", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response router.VersionResponse
	test.DecodeResponse(t, &recorder, &response)
	assert.NotEmpty(t, response.Data.Version)
}

func TestGetV1(t *testing.T) {
	t.Setenv("API_URL", "http://example.com")

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response router.V1Response
	test.DecodeResponse(t, &recorder, &response)
	assert.Equal(t, "http://example.com/v1/condominiums", response.Links.Condominiums)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Setenv("API_URL", "http://example.com")

	recorder := test.Request(t, http.MethodDelete, "http://example.com/version", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusMethodNotAllowed)
}

func TestOptionsRoot(t *testing.T) {
	t.Setenv("API_URL", "http://example.com")

	recorder := test.Request(t, http.MethodOptions, "http://example.com/", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
	assert.Equal(t, "GET", recorder.Header().Get("allow"))
}
