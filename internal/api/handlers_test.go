package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loadplan/internal/segregation"
	"loadplan/internal/service"
)

func newTestApp() *fiber.App {
	planner := service.NewPlanner(segregation.NewEvaluator(segregation.DefaultTable()), zap.NewNop(), nil)
	app := fiber.New()
	SetupRoutes(app, planner, nil)
	return app
}

func postPlan(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/load-planner/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

const validRequest = `{
	"vehicle": {
		"id": "truck-1",
		"length": 12000, "width": 2500, "height": 2700,
		"max_payload_weight": 20000,
		"axles": [
			{"position": 1500, "max_load": 6000},
			{"position": 9000, "max_load": 6000}
		]
	},
	"items": [
		{"id": "crate-1", "length": 2000, "width": 1000, "height": 1000, "weight": 500}
	]
}`

func TestHealthCheck(t *testing.T) {
	app := newTestApp()
	for _, path := range []string{"/healthz", "/actuator/health"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestPlanEndpointSuccess(t *testing.T) {
	app := newTestApp()

	status, body := postPlan(t, app, validRequest)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "FULL", body["feasibility"])
	assert.Equal(t, "truck-1", body["vehicle_id"])
	assert.NotEmpty(t, body["plan_id"])
	placements, ok := body["placements"].([]any)
	require.True(t, ok)
	assert.Len(t, placements, 1)
}

func TestPlanEndpointMalformedJSON(t *testing.T) {
	app := newTestApp()

	status, body := postPlan(t, app, `{"vehicle":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_JSON", errObj["code"])
}

func TestPlanEndpointInvalidInput(t *testing.T) {
	app := newTestApp()
	// Weight is required to be positive.
	bad := strings.Replace(validRequest, `"weight": 500`, `"weight": -5`, 1)

	status, body := postPlan(t, app, bad)

	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_INPUT", errObj["code"])
}

func TestPlanEndpointUnknownHazardClass(t *testing.T) {
	app := newTestApp()
	bad := strings.Replace(validRequest, `"weight": 500`, `"weight": 500, "hazard_class": "7"`, 1)

	status, body := postPlan(t, app, bad)

	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_INPUT", errObj["code"])
}

func TestPlanEndpointDeterministicBody(t *testing.T) {
	app := newTestApp()

	_, first := postPlan(t, app, validRequest)
	_, second := postPlan(t, app, validRequest)

	assert.Equal(t, first, second)
}

func TestRequestSizeLimiter(t *testing.T) {
	planner := service.NewPlanner(segregation.NewEvaluator(segregation.DefaultTable()), zap.NewNop(), nil)
	app := fiber.New()
	app.Use(RequestSizeLimiter(64))
	SetupRoutes(app, planner, nil)

	req := httptest.NewRequest("POST", "/api/v1/load-planner/plan", strings.NewReader(validRequest))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestMetricsEndpointAbsentWithoutGatherer(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
