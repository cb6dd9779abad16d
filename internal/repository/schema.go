package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// initQueries 建表语句，完整性规则全部压在存储层：
// 主键/外键、reviews.rating 的区间检查、genres.name 的唯一约束。
// 子类型表（actors/directors/writers）的主键同时是指向 people 的外键，
// 保证每条能力记录都依附于已存在的人物。
var initQueries = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		movie_id        TEXT PRIMARY KEY,
		primary_title   TEXT NOT NULL,
		original_title  TEXT NOT NULL DEFAULT '',
		title_type      TEXT NOT NULL DEFAULT '',
		start_year      INT,
		runtime_minutes INT,
		release_year    INT
	)`,

	`CREATE TABLE IF NOT EXISTS studios (
		studio_id    SERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		country      TEXT NOT NULL DEFAULT '',
		city         TEXT NOT NULL DEFAULT '',
		founded_year INT
	)`,

	`CREATE TABLE IF NOT EXISTS people (
		person_id         TEXT PRIMARY KEY,
		primary_name      TEXT NOT NULL,
		birth_year        INT,
		death_year        INT,
		professions       TEXT[] NOT NULL DEFAULT '{}',
		current_studio_id INT REFERENCES studios (studio_id)
	)`,

	`CREATE TABLE IF NOT EXISTS actors (
		person_id TEXT PRIMARY KEY REFERENCES people (person_id),
		fan_count INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS directors (
		person_id           TEXT PRIMARY KEY REFERENCES people (person_id),
		directing_style     TEXT NOT NULL DEFAULT '',
		best_known_movie_id TEXT REFERENCES movies (movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS writers (
		person_id           TEXT PRIMARY KEY REFERENCES people (person_id),
		writing_style       TEXT NOT NULL DEFAULT '',
		best_known_movie_id TEXT REFERENCES movies (movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS genres (
		genre_id SERIAL PRIMARY KEY,
		name     TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS awards (
		award_id SERIAL PRIMARY KEY,
		name     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id   SERIAL PRIMARY KEY,
		user_name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		review_id SERIAL PRIMARY KEY,
		user_id   INT  NOT NULL REFERENCES users (user_id),
		movie_id  TEXT NOT NULL REFERENCES movies (movie_id),
		post_time TIMESTAMPTZ NOT NULL DEFAULT now(),
		content   TEXT NOT NULL DEFAULT '',
		rating    INT  NOT NULL CONSTRAINT reviews_rating_check CHECK (rating BETWEEN 1 AND 10)
	)`,

	`CREATE TABLE IF NOT EXISTS has_genre (
		movie_id TEXT NOT NULL REFERENCES movies (movie_id),
		genre_id INT  NOT NULL REFERENCES genres (genre_id),
		PRIMARY KEY (movie_id, genre_id)
	)`,

	`CREATE TABLE IF NOT EXISTS produced_by (
		movie_id  TEXT NOT NULL REFERENCES movies (movie_id),
		studio_id INT  NOT NULL REFERENCES studios (studio_id),
		PRIMARY KEY (movie_id, studio_id)
	)`,

	`CREATE TABLE IF NOT EXISTS wins_award (
		movie_id TEXT NOT NULL REFERENCES movies (movie_id),
		award_id INT  NOT NULL REFERENCES awards (award_id),
		year     INT,
		PRIMARY KEY (movie_id, award_id)
	)`,

	`CREATE TABLE IF NOT EXISTS favorites (
		user_id  INT  NOT NULL REFERENCES users (user_id),
		movie_id TEXT NOT NULL REFERENCES movies (movie_id),
		PRIMARY KEY (user_id, movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS acts_in (
		movie_id  TEXT NOT NULL REFERENCES movies (movie_id),
		person_id TEXT NOT NULL REFERENCES actors (person_id),
		PRIMARY KEY (movie_id, person_id)
	)`,

	`CREATE TABLE IF NOT EXISTS directs (
		movie_id  TEXT NOT NULL REFERENCES movies (movie_id),
		person_id TEXT NOT NULL REFERENCES directors (person_id),
		PRIMARY KEY (movie_id, person_id)
	)`,

	`CREATE TABLE IF NOT EXISTS writes_script_for (
		movie_id  TEXT NOT NULL REFERENCES movies (movie_id),
		person_id TEXT NOT NULL REFERENCES writers (person_id),
		PRIMARY KEY (movie_id, person_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_movies_primary_title ON movies (primary_title)`,
	`CREATE INDEX IF NOT EXISTS idx_people_primary_name ON people (primary_name)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_movie ON reviews (movie_id, post_time DESC)`,
}

// Migrate 执行建表语句，全部语句幂等，可在每次启动时执行
func Migrate(db *gorm.DB) error {
	for _, q := range initQueries {
		if err := db.Exec(q).Error; err != nil {
			return fmt.Errorf("建表失败: %w", translate(err))
		}
	}
	return nil
}
