package persistence

import (
	"context"
	"testing"

	"github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormIdentityLinkRepository_Find(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormIdentityLinkRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Link(ctx, 7, 42, "jane"))

	t.Run("by contact id", func(t *testing.T) {
		link, err := repo.FindByContactID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(7), link.UserID)
		assert.Equal(t, int64(42), link.ContactID)
	})

	t.Run("by user id", func(t *testing.T) {
		link, err := repo.FindByUserID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(42), link.ContactID)
	})

	t.Run("missing link", func(t *testing.T) {
		_, err := repo.FindByContactID(ctx, 99)
		assert.ErrorIs(t, err, addresssync.ErrIdentityNotLinked)

		_, err = repo.FindByUserID(ctx, 99)
		assert.ErrorIs(t, err, addresssync.ErrIdentityNotLinked)
	})

	t.Run("non-positive ids are never linked", func(t *testing.T) {
		_, err := repo.FindByContactID(ctx, 0)
		assert.ErrorIs(t, err, addresssync.ErrIdentityNotLinked)
	})
}

func TestGormIdentityLinkRepository_LinkReplaces(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormIdentityLinkRepository(db.DB)
	ctx := context.Background()

	require.NoError(t, repo.Link(ctx, 7, 42, "jane"))
	require.NoError(t, repo.Link(ctx, 7, 43, "jane"))

	link, err := repo.FindByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(43), link.ContactID)

	_, err = repo.FindByContactID(ctx, 42)
	assert.ErrorIs(t, err, addresssync.ErrIdentityNotLinked)
}

func TestGormIdentityLinkRepository_QueryError(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "uf_match" WHERE contact_id = \$1`).
		WillReturnError(assert.AnError)

	repo := NewGormIdentityLinkRepository(db.DB)
	_, err := repo.FindByContactID(context.Background(), 42)

	require.Error(t, err)
	assert.NotErrorIs(t, err, addresssync.ErrIdentityNotLinked)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
