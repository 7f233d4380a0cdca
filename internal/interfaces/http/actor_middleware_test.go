package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/vertragswerk/contracts-api/internal/interfaces/http"
	pkgjwt "github.com/vertragswerk/contracts-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "contracts-api-test"
	testExpMin    = 60
)

// buildActorApp baut eine minimale App, die den ermittelten Akteur zurückgibt.
func buildActorApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/whoami",
		apphttp.ActorMiddleware(secret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"actor": apphttp.GetActor(c)})
		},
	)
	return app
}

func requestActor(t *testing.T, app *fiber.App, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if resp.StatusCode != http.StatusOK {
		return resp, ""
	}
	var body struct {
		Actor string `json:"actor"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body.Actor
}

func TestActorMiddleware_OhneHeaderGiltSystem(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	resp, actor := requestActor(t, app, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "System", actor)
}

func TestActorMiddleware_XActorHeader(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	resp, actor := requestActor(t, app, map[string]string{"X-Actor": "m.mustermann"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "m.mustermann", actor)
}

func TestActorMiddleware_GueltigerTokenLiefertAkteur(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	tok, err := pkgjwt.Generate(testJWTSecret, "s.schmidt", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, actor := requestActor(t, app, map[string]string{"Authorization": "Bearer " + tok})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s.schmidt", actor)
}

func TestActorMiddleware_TokenSchlaegtXActor(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	tok, err := pkgjwt.Generate(testJWTSecret, "s.schmidt", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, actor := requestActor(t, app, map[string]string{
		"Authorization": "Bearer " + tok,
		"X-Actor":       "jemand.anderes",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s.schmidt", actor)
}

func TestActorMiddleware_UngueltigerTokenIst401(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	resp, _ := requestActor(t, app, map[string]string{"Authorization": "Bearer kaputt"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMiddleware_FalschesFormatIst401(t *testing.T) {
	app := buildActorApp(testJWTSecret)

	resp, _ := requestActor(t, app, map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActorMiddleware_OhneSecretZaehltNurXActor(t *testing.T) {
	app := buildActorApp("")

	// Ohne konfiguriertes Secret wird der Authorization-Header ignoriert.
	resp, actor := requestActor(t, app, map[string]string{"Authorization": "Bearer egal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "System", actor)
}
