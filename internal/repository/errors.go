// Package repository 的错误分类。所有失败都带着出错的标识/取值返回给上层，
// 供展示层渲染提示信息；任何一类错误都不会被吞掉。
package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// NotFoundError 按名称/标题解析时一条都没匹配到。
// 与"解析成功但过滤结果为空"是两回事，后者返回空序列而不是错误。
type NotFoundError struct {
	Kind  string // 实体类别，如 movie / studio / user / genre / director
	Value string // 未匹配到的名称或标题
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到%s: %q", kindLabel(e.Kind), e.Value)
}

// AmbiguousTitleError 精确标题命中了多部电影，写入路径必须指向唯一一行，
// 因此拒绝并附上各候选的年份，提示调用方按年份区分。
type AmbiguousTitleError struct {
	Title string
	Years []int // 候选电影的 start_year，用于提示
}

func (e *AmbiguousTitleError) Error() string {
	years := make([]string, len(e.Years))
	for i, y := range e.Years {
		years[i] = fmt.Sprint(y)
	}
	return fmt.Sprintf("标题 %q 匹配到 %d 部电影（年份: %s），请进一步区分",
		e.Title, len(e.Years), strings.Join(years, ", "))
}

// ReferentialError 操作引用了不存在的实体（外键失败）
type ReferentialError struct {
	Relation string // 出错的表/关系
	Value    string // 引用失败的标识
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("引用的实体不存在: %s (%s)", e.Value, e.Relation)
}

// DuplicateAssociationError 关联记录的复合主键已存在，同一条边不允许重复
type DuplicateAssociationError struct {
	Relation string
	Key      string
}

func (e *DuplicateAssociationError) Error() string {
	return fmt.Sprintf("关联已存在: %s (%s)", e.Key, e.Relation)
}

// ConstraintViolation 标量约束被破坏（评分越界、要求唯一的取值重复等）
type ConstraintViolation struct {
	Constraint string
	Value      string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("约束校验失败: %s (%s)", e.Constraint, e.Value)
}

// ConnectivityError 底层数据库不可达。对当前操作是致命的，
// 核心层不做自动重试，是否重试由调用方决定。
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("数据库不可达: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// associationTables 复合主键的关联表，唯一键冲突归类为重复关联
var associationTables = map[string]bool{
	"has_genre":         true,
	"produced_by":       true,
	"wins_award":        true,
	"favorites":         true,
	"acts_in":           true,
	"directs":           true,
	"writes_script_for": true,
}

// translate 把底层数据库错误映射到本包的错误分类。
// gorm 的 postgres 驱动底层是 pgx，约束类失败都带 SQLSTATE。
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23503": // foreign_key_violation
			return &ReferentialError{Relation: pgErr.TableName, Value: pgErr.Detail}
		case pgErr.Code == "23505": // unique_violation
			if associationTables[pgErr.TableName] {
				return &DuplicateAssociationError{Relation: pgErr.TableName, Key: pgErr.Detail}
			}
			return &ConstraintViolation{Constraint: pgErr.ConstraintName, Value: pgErr.Detail}
		case pgErr.Code == "23514": // check_violation
			return &ConstraintViolation{Constraint: pgErr.ConstraintName, Value: pgErr.Detail}
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception 一族
			return &ConnectivityError{Err: err}
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) {
		return &ConnectivityError{Err: err}
	}
	return err
}

func kindLabel(kind string) string {
	switch kind {
	case "movie":
		return "电影"
	case "studio":
		return "制片厂"
	case "user":
		return "用户"
	case "genre":
		return "类型"
	case "director":
		return "导演"
	case "person":
		return "人物"
	default:
		return kind
	}
}
