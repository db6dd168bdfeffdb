package service

import (
	"path/filepath"
	"testing"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/validators"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
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

func seedUser(t *testing.T, db *gorm.DB, email, password string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
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

func seedNote(t *testing.T, db *gorm.DB, note *entity.Note) *entity.Note {
	t.Helper()

	repo := repository.NewNoteRepository(db)
	require.NoError(t, repo.Insert(note, repository.WriteOptions{}))
	return note
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }
func boolptr(b bool) *bool    { return &b }
