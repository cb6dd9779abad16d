package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmdb/internal/model"
)

func TestResolveTitleNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery("FROM movies").
		WithArgs("不存在的电影").
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movie, err := repo.ResolveTitle("不存在的电影")
	assert.Nil(t, movie)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "movie", nf.Kind)
	assert.Equal(t, "不存在的电影", nf.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveTitleUnique(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery("FROM movies").
		WithArgs("Ten Lives").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0000001", "Ten Lives", "Ten Lives", "movie", 2004, 96, 2004))

	movie, err := repo.ResolveTitle("Ten Lives")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, "tt0000001", movie.MovieID)
	assert.Equal(t, 2004, movie.StartYear)
}

func TestResolveTitleAmbiguous(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	// 同名翻拍片，精确标题命中两行
	mock.ExpectQuery("FROM movies").
		WithArgs("Hairspray").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0094889", "Hairspray", "Hairspray", "movie", 1988, 92, 1988).
			AddRow("tt0427327", "Hairspray", "Hairspray", "movie", 2007, 117, 2007))

	movie, err := repo.ResolveTitle("Hairspray")
	assert.Nil(t, movie)

	var amb *AmbiguousTitleError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, "Hairspray", amb.Title)
	assert.ElementsMatch(t, []int{1988, 2007}, amb.Years)
}

func TestFindByIDMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery("FROM movies").
		WithArgs("tt9999999").
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movie, err := repo.FindByID("tt9999999")
	// 未命中不是错误，返回双 nil
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestSciFiAfterYearEmptyResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery("JOIN has_genre").
		WithArgs(3000).
		WillReturnRows(sqlmock.NewRows([]string{
			"movie_id", "primary_title", "start_year", "runtime_minutes", "genre",
		}))

	rows, err := repo.SciFiAfterYear(3000)
	// 过滤为空是合法结果，不是 NotFound
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLongMovies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery("runtime_minutes").
		WithArgs(180).
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0000002", "Epic", "Epic", "movie", 1963, 248, 1963).
			AddRow("tt0000003", "Long One", "Long One", "movie", 1980, 195, 1980))

	rows, err := repo.LongMovies(180)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 248, rows[0].RuntimeMinutes)
	assert.Equal(t, 195, rows[1].RuntimeMinutes)
}

func TestCreateBatchEmptyIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	err := repo.CreateBatch(nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkStudioTranslatesForeignKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectExec("INSERT INTO produced_by").
		WithArgs("tt404", 9).
		WillReturnError(&pgconn.PgError{
			Code:      "23503",
			TableName: "produced_by",
			Detail:    `Key (movie_id)=(tt404) is not present in table "movies".`,
		})

	err := repo.LinkStudio(&model.ProducedBy{MovieID: "tt404", StudioID: 9})
	var ref *ReferentialError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "produced_by", ref.Relation)
}
