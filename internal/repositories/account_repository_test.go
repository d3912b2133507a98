package repositories

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"travelwise/internal/infra"
	"travelwise/internal/models/db_models"
)

func testPostgres(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(context.Background(), db, zap.NewNop()))

	t.Cleanup(func() {
		db.Exec("DELETE FROM accounts WHERE email LIKE ?", "%@repo-test.travelwise")
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestAccountRepository_Postgres(t *testing.T) {
	db := testPostgres(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	email := uuid.NewString()[:8] + "@repo-test.travelwise"
	account := &db_models.Account{
		FullName:     "Repo Test",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Insert(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.NotZero(t, account.CreatedAt)

	found, err := repo.FindByEmail(ctx, strings.ToUpper(email))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, account.ID, found.ID)

	byID, err := repo.FindByID(ctx, account.ID.String())
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Repo Test", byID.FullName)

	missing, err := repo.FindByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.ExistsByEmail(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)

	dup := &db_models.Account{FullName: "Dup", Email: strings.ToUpper(email), PasswordHash: "hash"}
	assert.ErrorIs(t, repo.Insert(ctx, dup), gorm.ErrDuplicatedKey)
}
