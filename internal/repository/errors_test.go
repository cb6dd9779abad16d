package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateNil(t *testing.T) {
	assert.Nil(t, translate(nil))
}

func TestTranslateForeignKey(t *testing.T) {
	err := translate(&pgconn.PgError{
		Code:      "23503",
		TableName: "reviews",
		Detail:    `Key (user_id)=(404) is not present in table "users".`,
	})

	var ref *ReferentialError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "reviews", ref.Relation)
}

func TestTranslateUniqueOnAssociationTable(t *testing.T) {
	// 关联表的复合主键冲突归类为重复关联
	for _, table := range []string{"has_genre", "favorites", "acts_in", "wins_award"} {
		err := translate(&pgconn.PgError{Code: "23505", TableName: table})

		var dup *DuplicateAssociationError
		require.ErrorAs(t, err, &dup, table)
		assert.Equal(t, table, dup.Relation)
	}
}

func TestTranslateUniqueOnEntityTable(t *testing.T) {
	// 实体表的唯一冲突（如 genres.name）是约束违反，不是重复关联
	err := translate(&pgconn.PgError{
		Code:           "23505",
		TableName:      "genres",
		ConstraintName: "genres_name_key",
	})

	var cv *ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "genres_name_key", cv.Constraint)
}

func TestTranslateCheckViolation(t *testing.T) {
	err := translate(&pgconn.PgError{
		Code:           "23514",
		TableName:      "reviews",
		ConstraintName: "reviews_rating_check",
	})

	var cv *ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "reviews_rating_check", cv.Constraint)
}

func TestTranslateConnectionFailures(t *testing.T) {
	cases := []error{
		&pgconn.PgError{Code: "08006"}, // connection_failure
		&pgconn.PgError{Code: "08001"}, // unable to connect
		driver.ErrBadConn,
		fmt.Errorf("wrapped: %w", driver.ErrBadConn),
	}
	for _, in := range cases {
		var conn *ConnectivityError
		require.ErrorAs(t, translate(in), &conn, "%v", in)
	}
}

func TestTranslatePassthrough(t *testing.T) {
	plain := errors.New("something else")
	assert.Equal(t, plain, translate(plain))

	// 未归类的 SQLSTATE 原样返回
	pgErr := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(pgErr), translate(pgErr))
}

func TestErrorMessages(t *testing.T) {
	nf := &NotFoundError{Kind: "movie", Value: "Ten Lives"}
	assert.Contains(t, nf.Error(), "电影")
	assert.Contains(t, nf.Error(), "Ten Lives")

	amb := &AmbiguousTitleError{Title: "Hairspray", Years: []int{1988, 2007}}
	assert.Contains(t, amb.Error(), "2")
	assert.Contains(t, amb.Error(), "1988, 2007")
}
