package handler

import (
	"net/http"
	"testing"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/service"
	"notehub/cmd/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrivacyPolicyRoute(t *testing.T) {
	db := newTestDB(t)
	route := NewPolicyDefault(service.NewPolicyService(repository.NewPolicyRepository(db)))
	e := echo.New()

	now := utils.NowUTC()
	require.NoError(t, db.Create(&entity.PrivacyPolicy{
		Version:       "1.0",
		Content:       "We keep your notes to ourselves.",
		IsActive:      true,
		EffectiveDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}).Error)

	c, rec := newRequestContext(e, http.MethodGet, "/getPrivacyPolicy", "", nil)
	require.NoError(t, route.GetPrivacyPolicy(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	policy := data["policy"].(map[string]any)
	assert.Equal(t, "1.0", policy["version"])
	assert.Equal(t, true, policy["is_active"])
}

func TestGetPrivacyPolicyRouteNoneActive(t *testing.T) {
	db := newTestDB(t)
	route := NewPolicyDefault(service.NewPolicyService(repository.NewPolicyRepository(db)))
	e := echo.New()

	c, rec := newRequestContext(e, http.MethodGet, "/getPrivacyPolicy", "", nil)
	require.NoError(t, route.GetPrivacyPolicy(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Privacy policy not found", envelope["message"])
}
