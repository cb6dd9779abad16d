package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmdb/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var movieColumns = []string{
	"movie_id", "primary_title", "original_title", "title_type",
	"start_year", "runtime_minutes", "release_year",
}

func newReviewService(t *testing.T) (*ReviewService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewReviewService(repository.NewRepositories(db)), mock
}

func TestSubmitHappyPath(t *testing.T) {
	svc, mock := newReviewService(t)
	postTime := time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM movies").
		WithArgs("Ten Lives").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0000001", "Ten Lives", "Ten Lives", "movie", 2004, 96, 2004))
	mock.ExpectQuery("FROM users").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name"}).AddRow(1, "alice"))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(1, "tt0000001", postTime, "不错", 8).
		WillReturnRows(sqlmock.NewRows([]string{"review_id"}).AddRow(7))
	mock.ExpectCommit()

	review, err := svc.Submit(ReviewInput{
		UserID:     1,
		MovieTitle: "Ten Lives",
		Rating:     8,
		Content:    "不错",
		PostTime:   &postTime,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, review.ReviewID)
	assert.Equal(t, "tt0000001", review.MovieID)
	assert.Equal(t, postTime, review.PostTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRatingOutOfRange(t *testing.T) {
	svc, mock := newReviewService(t)

	for _, rating := range []int{0, 11, -3} {
		_, err := svc.Submit(ReviewInput{
			UserID: 1, MovieTitle: "Ten Lives", Rating: rating, Content: "x",
		})

		var cv *repository.ConstraintViolation
		require.ErrorAs(t, err, &cv, "rating=%d", rating)
	}
	// 评分越界在进数据库之前就被挡下
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAmbiguousTitleRollsBack(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM movies").
		WithArgs("Hairspray").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0094889", "Hairspray", "Hairspray", "movie", 1988, 92, 1988).
			AddRow("tt0427327", "Hairspray", "Hairspray", "movie", 2007, 117, 2007))
	mock.ExpectRollback()

	review, err := svc.Submit(ReviewInput{
		UserID: 1, MovieTitle: "Hairspray", Rating: 9, Content: "x",
	})
	assert.Nil(t, review)

	var amb *repository.AmbiguousTitleError
	require.ErrorAs(t, err, &amb)
	assert.ElementsMatch(t, []int{1988, 2007}, amb.Years)
	// 事务整体回滚，没有写入发生
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitUnknownMovie(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM movies").
		WithArgs("没有这部电影").
		WillReturnRows(sqlmock.NewRows(movieColumns))
	mock.ExpectRollback()

	_, err := svc.Submit(ReviewInput{
		UserID: 1, MovieTitle: "没有这部电影", Rating: 5, Content: "x",
	})

	var nf *repository.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "movie", nf.Kind)
}

func TestSubmitUnknownUser(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM movies").
		WithArgs("Ten Lives").
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow("tt0000001", "Ten Lives", "Ten Lives", "movie", 2004, 96, 2004))
	mock.ExpectQuery("FROM users").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name"}))
	mock.ExpectRollback()

	_, err := svc.Submit(ReviewInput{
		UserID: 404, MovieTitle: "Ten Lives", Rating: 5, Content: "x",
	})

	var ref *repository.ReferentialError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "users", ref.Relation)
	assert.Equal(t, "404", ref.Value)
}
