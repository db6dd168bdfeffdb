package repository

import (
	"testing"

	"notehub/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "alice@example.com")

	got, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)

	missing, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExistsByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "alice@example.com")

	exists, err := repo.ExistsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	noteRepo := NewNoteRepository(db)
	tokenRepo := NewTokenRepository(db)

	doomed := seedUser(t, db, "doomed@example.com")
	bystander := seedUser(t, db, "bystander@example.com")

	require.NoError(t, noteRepo.Insert(&entity.Note{UserID: doomed.ID, Content: "goes away"}, WriteOptions{}))
	kept := &entity.Note{UserID: bystander.ID, Content: "stays"}
	require.NoError(t, noteRepo.Insert(kept, WriteOptions{}))
	require.NoError(t, tokenRepo.SaveReset(&entity.PasswordReset{Email: doomed.Email, TokenHash: "h", CreatedAt: 1000}))

	require.NoError(t, userRepo.DeleteCascade(doomed))

	gone, err := userRepo.FindByID(doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	notes, err := noteRepo.FindAllByOwner(doomed.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, notes)

	reset, err := tokenRepo.FindResetByEmail(doomed.Email)
	require.NoError(t, err)
	assert.Nil(t, reset)

	still, err := noteRepo.FindByIDAndOwner(bystander.ID, kept.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}
