package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type AwardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) *AwardRepository {
	return &AwardRepository{db: db}
}

// Create 新增奖项并回填 award_id
func (r *AwardRepository) Create(a *model.Award) error {
	err := r.db.Raw(`INSERT INTO awards (name) VALUES (?) RETURNING award_id`,
		a.Name).Scan(&a.AwardID).Error
	return translate(err)
}

// Link 记录电影获奖，同一电影同一奖项只允许一条
func (r *AwardRepository) Link(w *model.WinsAward) error {
	err := r.db.Exec(`INSERT INTO wins_award (movie_id, award_id, year) VALUES (?, ?, ?)`,
		w.MovieID, w.AwardID, w.Year).Error
	return translate(err)
}
