package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmdb/internal/repository"
	"github.com/user/filmdb/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCatalog(t *testing.T) (*Catalog, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 每个测试用全新的全局缓存，判定结果互不串扰
	utils.InitCache()
	return NewCatalog(repository.NewRepositories(db)), mock
}

func TestCatalogMoviesByDirectorUnknown(t *testing.T) {
	catalog, mock := newCatalog(t)

	mock.ExpectQuery("COUNT").
		WithArgs("查无此人").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rows, err := catalog.MoviesByDirector("查无此人")
	assert.Nil(t, rows)

	var nf *repository.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "director", nf.Kind)
	// 判定失败后不再执行查询本体
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogDirectorGateMemoized(t *testing.T) {
	catalog, mock := newCatalog(t)

	// 存在性只查一次，后续调用命中缓存；查询本体每次现算
	mock.ExpectQuery("COUNT").
		WithArgs("Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	movieRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"movie_id", "primary_title", "original_title", "title_type",
			"start_year", "runtime_minutes", "release_year",
		}).AddRow("tt0000004", "First Film", "First Film", "movie", 1990, 100, 1990)
	}
	mock.ExpectQuery("JOIN directs").WithArgs("Jane Doe").WillReturnRows(movieRows())
	mock.ExpectQuery("JOIN directs").WithArgs("Jane Doe").WillReturnRows(movieRows())

	for i := 0; i < 2; i++ {
		rows, err := catalog.MoviesByDirector("Jane Doe")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogWritersForDirectorSharesGate(t *testing.T) {
	catalog, mock := newCatalog(t)

	// Q4 与 Q8 共用同一个导演存在性结论
	mock.ExpectQuery("COUNT").
		WithArgs("Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("JOIN directs").
		WithArgs("Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{
			"movie_id", "primary_title", "original_title", "title_type",
			"start_year", "runtime_minutes", "release_year",
		}))
	mock.ExpectQuery("writes_script_for").
		WithArgs("Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "primary_name"}).
			AddRow("nm0000009", "Some Writer"))

	_, err := catalog.MoviesByDirector("Jane Doe")
	require.NoError(t, err)

	writers, err := catalog.WritersForDirector("Jane Doe")
	require.NoError(t, err)
	require.Len(t, writers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogTopRatedUnknownGenre(t *testing.T) {
	catalog, mock := newCatalog(t)

	mock.ExpectQuery("FROM genres").
		WithArgs("Unknown").
		WillReturnRows(sqlmock.NewRows([]string{"genre_id", "name"}))

	rows, err := catalog.TopRatedInGenre("Unknown")
	assert.Nil(t, rows)

	var nf *repository.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "genre", nf.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogFavoritesUnknownUser(t *testing.T) {
	catalog, mock := newCatalog(t)

	mock.ExpectQuery("COUNT").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rows, err := catalog.FavoritesOfUser("nobody")
	assert.Nil(t, rows)

	var nf *repository.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogUnknownNameNotMemoized(t *testing.T) {
	catalog, mock := newCatalog(t)

	// 否定结论不进缓存，每次都重新判定
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("COUNT").
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	}

	for i := 0; i < 2; i++ {
		_, err := catalog.FavoritesOfUser("nobody")
		var nf *repository.NotFoundError
		require.ErrorAs(t, err, &nf)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
