package persistence

import (
	"context"
	"testing"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSettingsRepository_IsEnabled(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingsRepository(db.DB, map[string]bool{"defaulted_on": true})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, addresssync.SettingSyncContactAddress, "yes"))
	require.NoError(t, repo.Set(ctx, "explicit_off", "no"))

	tests := []struct {
		key  string
		want bool
	}{
		{addresssync.SettingSyncContactAddress, true},
		{"explicit_off", false},
		{"defaulted_on", true},
		{"unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := repo.IsEnabled(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGormSettingsRepository_SetOverwrites(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingsRepository(db.DB, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "flag", "yes"))
	require.NoError(t, repo.Set(ctx, "flag", "no"))

	value, err := repo.Get(ctx, "flag")
	require.NoError(t, err)
	assert.Equal(t, "no", value)
}

func TestGormSettingsRepository_Get_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormSettingsRepository(db.DB, nil)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, addresssync.ErrSettingNotFound)
}

func TestGormSettingsRepository_QueryError(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "options"`).WillReturnError(assert.AnError)

	repo := NewGormSettingsRepository(db.DB, map[string]bool{"flag": true})
	enabled, err := repo.IsEnabled(context.Background(), "flag")

	require.Error(t, err)
	assert.False(t, enabled, "read errors do not fall back to the default")
	assert.NoError(t, mock.ExpectationsWereMet())
}
