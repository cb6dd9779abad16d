package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create 新增类型并回填 genre_id。name 全库唯一，重复写入被约束拒绝。
func (r *GenreRepository) Create(g *model.Genre) error {
	err := r.db.Raw(`INSERT INTO genres (name) VALUES (?) RETURNING genre_id`,
		g.Name).Scan(&g.GenreID).Error
	return translate(err)
}

// FindByName 按名称查找类型，未找到时返回 (nil, nil)
func (r *GenreRepository) FindByName(name string) (*model.Genre, error) {
	var rows []model.Genre
	err := r.db.Raw(`SELECT genre_id, name FROM genres WHERE name = ?`, name).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Link 建立电影-类型关联，端点缺失或重复关联由约束层拒绝
func (r *GenreRepository) Link(hg *model.HasGenre) error {
	err := r.db.Exec(`INSERT INTO has_genre (movie_id, genre_id) VALUES (?, ?)`,
		hg.MovieID, hg.GenreID).Error
	return translate(err)
}
