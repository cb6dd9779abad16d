package model

import (
	"time"
)

// User 用户模型（固定的合成用户群，由装载器一次性写入，之后不可变）
type User struct {
	UserID   int    `json:"user_id" db:"user_id" gorm:"primaryKey;autoIncrement"`
	UserName string `json:"user_name" db:"user_name"`
}

// Review 影评，评分限定在 [1,10]，越界直接拒绝而不是截断
type Review struct {
	ReviewID int       `json:"review_id" db:"review_id" gorm:"primaryKey;autoIncrement"`
	UserID   int       `json:"user_id" db:"user_id"`
	MovieID  string    `json:"movie_id" db:"movie_id"`
	PostTime time.Time `json:"post_time" db:"post_time"`
	Content  string    `json:"content" db:"content"`
	Rating   int       `json:"rating" db:"rating"`
}

// Favorite 收藏关联
type Favorite struct {
	UserID  int    `json:"user_id" db:"user_id" gorm:"primaryKey"`
	MovieID string `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
}
