package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/validators"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Note{},
		&entity.PrivacyPolicy{},
		&entity.PasswordReset{},
		&entity.RevokedToken{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func newTestValidate(t *testing.T) *validator.Validate {
	t.Helper()

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("hasupper", validators.HasUpper))
	require.NoError(t, validate.RegisterValidation("haslower", validators.HasLower))
	require.NoError(t, validate.RegisterValidation("hasdigit", validators.HasDigit))
	require.NoError(t, validate.RegisterValidation("hasspecial", validators.HasSpecial))
	require.NoError(t, validate.RegisterValidation("nodupes", validators.NoDupes))
	return validate
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	require.NoError(t, err)

	now := utils.NowUTC()
	user := &entity.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// newRequestContext builds an echo context carrying an authenticated
// user, the way the auth middleware would leave it.
func newRequestContext(e *echo.Echo, method, target, body string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}
