package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ReviewRow Q3 结果行
type ReviewRow struct {
	ReviewID int    `json:"review_id" db:"review_id"`
	UserName string `json:"user_name" db:"user_name"`
	Rating   int    `json:"rating" db:"rating"`
	PostTime string `json:"post_time" db:"post_time"`
	Content  string `json:"content" db:"content"`
}

// ListByMovie Q3：某部电影的全部影评，按发表时间倒序。
// 标题解析由调用方先行完成，零影评返回空序列。
func (r *ReviewRepository) ListByMovie(movieID string) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.db.Raw(`
		SELECT rv.review_id, u.user_name, rv.rating,
		       to_char(rv.post_time, 'YYYY-MM-DD HH24:MI:SS') AS post_time,
		       rv.content
		FROM reviews rv
		JOIN users u ON u.user_id = rv.user_id
		WHERE rv.movie_id = ?
		ORDER BY rv.post_time DESC, rv.review_id DESC`, movieID).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// Insert 写入一条影评并回填生成的 review_id。
// rating 区间与外键都由存储层约束兜底，违约在 translate 里归类。
func (r *ReviewRepository) Insert(review *model.Review) error {
	err := r.db.Raw(`
		INSERT INTO reviews (user_id, movie_id, post_time, content, rating)
		VALUES (?, ?, ?, ?, ?)
		RETURNING review_id`,
		review.UserID, review.MovieID, review.PostTime,
		review.Content, review.Rating).Scan(&review.ReviewID).Error
	return translate(err)
}

// RatedMovie Q10 结果行
type RatedMovie struct {
	MovieID      string  `json:"movie_id" db:"movie_id"`
	PrimaryTitle string  `json:"primary_title" db:"primary_title"`
	StartYear    int     `json:"start_year" db:"start_year"`
	AvgRating    float64 `json:"avg_rating" db:"avg_rating"`
	NumReviews   int     `json:"num_reviews" db:"num_reviews"`
}

// TopRatedInGenre Q10：某类型下平均评分最高的前 10 部电影。
// 类型名的存在性判定由调用方先行完成；平均分并列时按 movie_id
// 升序决出，保证结果可复现；没有影评的电影不参与排名。
func (r *ReviewRepository) TopRatedInGenre(genreName string) ([]RatedMovie, error) {
	var rows []RatedMovie
	err := r.db.Raw(`
		SELECT m.movie_id, m.primary_title, m.start_year,
		       AVG(r.rating) AS avg_rating,
		       COUNT(r.review_id) AS num_reviews
		FROM movies m
		JOIN has_genre hg ON hg.movie_id = m.movie_id
		JOIN genres g ON g.genre_id = hg.genre_id
		JOIN reviews r ON r.movie_id = m.movie_id
		WHERE g.name = ?
		GROUP BY m.movie_id, m.primary_title, m.start_year
		ORDER BY avg_rating DESC, m.movie_id ASC
		LIMIT 10`, genreName).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
