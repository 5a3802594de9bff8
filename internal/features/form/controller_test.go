package form

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"agency-forms/internal/config"
	common_models "agency-forms/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI(t *testing.T) (*fiber.App, *memoryRepo, *recordingAudit) {
	t.Helper()
	repo := newMemoryRepo()
	auditLog := &recordingAudit{}
	service := NewTemplateService(repo, auditLog, zap.NewNop())

	app := fiber.New()
	NewTemplateApi(NewTemplateController(service), &config.Config{SkipAuth: true}).Setup(app)
	return app, repo, auditLog
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestCreateTemplateEndpoint(t *testing.T) {
	app, repo, auditLog := newTestAPI(t)

	body := `{
		"name": "Auto Quick Quote",
		"line_of_business": ["auto"],
		"is_active": true,
		"sections": [{
			"label": "Vehicle",
			"sort_order": 1,
			"fields": [{"label": "VIN", "field_type": "vin", "is_required": true,
				"validation_rules": {"pattern": "^[A-HJ-NPR-Z0-9]{17}$"}}]
		}]
	}`
	status, out := doJSON(t, app, "POST", "/api/form-templates/", body)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Auto Quick Quote", out["name"])
	assert.Len(t, repo.templates, 1)
	assert.Equal(t, []common_models.AuditAction{common_models.AuditActionCreate}, auditLog.actions)

	for _, tmpl := range repo.templates {
		assert.Equal(t, "vehicle", tmpl.Sections[0].Name)
		assert.Equal(t, "vin", tmpl.Sections[0].Fields[0].Name)
	}
}

func TestCreateTemplateRejectsUnknownFieldType(t *testing.T) {
	app, repo, _ := newTestAPI(t)

	body := `{"name": "Bad", "sections": [{"name": "s", "fields": [{"name": "sig", "label": "Sig", "field_type": "signature"}]}]}`
	status, out := doJSON(t, app, "POST", "/api/form-templates/", body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out["error"], "unsupported field type")
	assert.Empty(t, repo.templates)
}

func TestRenderAndValidateEndpoints(t *testing.T) {
	app, repo, _ := newTestAPI(t)
	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(context.Background(), tmpl))
	id := tmpl.ID.Hex()

	status, out := doJSON(t, app, "POST", "/api/form-templates/"+id+"/render", `{"line_of_business": ["home"], "values": {}}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["sections"], 2)

	status, out = doJSON(t, app, "POST", "/api/form-templates/"+id+"/validate", `{"line_of_business": ["auto"], "values": {"applicant_first_name": "John"}}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, map[string]interface{}{"veh1_vin": "VIN is required"}, out["errors"])
}

func TestGetMissingTemplate(t *testing.T) {
	app, _, _ := newTestAPI(t)

	status, out := doJSON(t, app, "GET", "/api/form-templates/65f000000000000000000000", "")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", out["code"])
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	app, repo, auditLog := newTestAPI(t)
	tmpl := quoteTemplate()
	require.NoError(t, repo.Create(context.Background(), tmpl))
	id := tmpl.ID.Hex()

	status, out := doJSON(t, app, "PUT", "/api/form-templates/"+id, `{"is_active": false}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, out["is_active"])

	status, _ = doJSON(t, app, "DELETE", "/api/form-templates/"+id, "")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Empty(t, repo.templates)

	assert.Equal(t, []common_models.AuditAction{common_models.AuditActionUpdate, common_models.AuditActionDelete}, auditLog.actions)
}

func TestBuildMasterEndpoint(t *testing.T) {
	app, repo, _ := newTestAPI(t)

	status, out := doJSON(t, app, "POST", "/api/form-templates/master", "")

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, out["is_master"])
	assert.Len(t, out["sections"], 8)
	assert.Len(t, repo.templates, 1)
}

func TestFieldTypesEndpoint(t *testing.T) {
	app, _, _ := newTestAPI(t)

	status, out := doJSON(t, app, "GET", "/api/form-templates/field-types", "")

	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["field_types"], 13)
	assert.Len(t, out["operators"], 5)
}
