package audit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/config"
	"agency-forms/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	logs          []common_models.AuditLog
	filter        Filter
	limit, offset int64
}

func (r *memoryRepo) Create(ctx context.Context, log common_models.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *memoryRepo) List(ctx context.Context, filter Filter, limit, offset int64) ([]common_models.AuditLog, error) {
	r.filter, r.limit, r.offset = filter, limit, offset
	return r.logs, nil
}

func TestLogChangeRecordsActorAndTime(t *testing.T) {
	repo := &memoryRepo{}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := &AuditServiceImpl{Repo: repo, Now: func() time.Time { return at }}

	ctx := utils.WithClaims(context.Background(), &utils.UserClaims{UserID: "agent-7"})
	err := svc.LogChange(ctx, common_models.AuditActionSubmit, "form_submissions", "sub-1", map[string]common_models.Change{
		"status": {Old: "draft", New: "submitted"},
	})
	require.NoError(t, err)

	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, "agent-7", log.ActorID)
	assert.Equal(t, at, log.Timestamp)
	assert.Equal(t, common_models.AuditActionSubmit, log.Action)
	assert.False(t, log.ID.IsZero())
}

func TestListLogsClampsPaging(t *testing.T) {
	tests := []struct {
		page, limit       int64
		wantLimit, offset int64
	}{
		{0, 0, 10, 0},
		{3, 20, 20, 40},
		{1, 500, 100, 0},
	}

	for _, tt := range tests {
		repo := &memoryRepo{}
		svc := NewAuditService(repo)
		_, err := svc.ListLogs(context.Background(), Filter{}, tt.page, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.wantLimit, repo.limit)
		assert.Equal(t, tt.offset, repo.offset)
	}
}

func TestHistoryEndpointFiltersByRecord(t *testing.T) {
	repo := &memoryRepo{logs: []common_models.AuditLog{{Module: "form_submissions", RecordID: "sub-9", Action: common_models.AuditActionSubmit}}}
	app := fiber.New()
	NewAuditApi(NewAuditController(NewAuditService(repo)), &config.Config{SkipAuth: true}).Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/audit-logs/form_submissions/sub-9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var logs []common_models.AuditLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	assert.Len(t, logs, 1)
	assert.Equal(t, Filter{Module: "form_submissions", RecordID: "sub-9"}, repo.filter)
}
