package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

// CreateBatch 批量写入制片厂
func (r *StudioRepository) CreateBatch(studios []model.Studio) error {
	if len(studios) == 0 {
		return nil
	}
	return translate(r.db.CreateInBatches(&studios, 500).Error)
}

// FindByName 按名称查找制片厂（名称不要求唯一，可能多家）
func (r *StudioRepository) FindByName(name string) ([]model.Studio, error) {
	var rows []model.Studio
	err := r.db.Raw(`
		SELECT studio_id, name, country, city, founded_year
		FROM studios
		WHERE name = ?`, name).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// StudioRating Q5 结果行。AvgRating 为空指针表示"暂无评分"——
// 该制片厂名下有电影但一条影评都没有，这与平均分为 0 完全不同。
type StudioRating struct {
	StudioID   int      `json:"studio_id" db:"studio_id"`
	StudioName string   `json:"studio_name" db:"studio_name"`
	AvgRating  *float64 `json:"avg_rating" db:"avg_rating"`
	NumMovies  int      `json:"num_movies" db:"num_movies"`
	NumReviews int      `json:"num_reviews" db:"num_reviews"`
}

// HasRatings 是否存在可统计的影评
func (s StudioRating) HasRatings() bool { return s.AvgRating != nil }

// AvgRatingByStudio Q5：某制片厂出品电影的平均评分。
// 名称解析不到任何制片厂时返回 NotFoundError；重名时每家各出一行。
// LEFT JOIN 保证零影评的制片厂也有结果行（avg 为 NULL），而不是报错或 0 分。
func (r *StudioRepository) AvgRatingByStudio(name string) ([]StudioRating, error) {
	var rows []StudioRating
	err := r.db.Raw(`
		SELECT s.studio_id, s.name AS studio_name,
		       AVG(r.rating) AS avg_rating,
		       COUNT(DISTINCT m.movie_id) AS num_movies,
		       COUNT(r.review_id) AS num_reviews
		FROM studios s
		LEFT JOIN produced_by pb ON pb.studio_id = s.studio_id
		LEFT JOIN movies m ON m.movie_id = pb.movie_id
		LEFT JOIN reviews r ON r.movie_id = m.movie_id
		WHERE s.name = ?
		GROUP BY s.studio_id, s.name
		ORDER BY s.studio_id ASC`, name).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Kind: "studio", Value: name}
	}
	return rows, nil
}
