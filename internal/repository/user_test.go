package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmdb/internal/model"
)

func TestUserExistsByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("COUNT").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("COUNT").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsByName("nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ExistsByName("alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavoritesOfUserEmptyList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// 用户存在但没有收藏：空序列而不是 NotFound
	mock.ExpectQuery("JOIN favorites").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "primary_title", "release_year"}))

	rows, err := repo.FavoritesOfUser("alice")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAddFavoriteDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO favorites").
		WithArgs(1, "tt0000001").
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "favorites"})

	err := repo.AddFavorite(&model.Favorite{UserID: 1, MovieID: "tt0000001"})
	var dup *DuplicateAssociationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "favorites", dup.Relation)
}

func TestUserFindByIDMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name"}))

	user, err := repo.FindByID(404)
	require.NoError(t, err)
	assert.Nil(t, user)
}
