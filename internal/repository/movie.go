package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// CreateBatch 批量写入电影（装载器专用，movie_id 由外部数据源提供）
func (r *MovieRepository) CreateBatch(movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	return translate(r.db.CreateInBatches(&movies, 500).Error)
}

// LinkStudio 建立电影-制片厂关联
func (r *MovieRepository) LinkStudio(pb *model.ProducedBy) error {
	err := r.db.Exec(`INSERT INTO produced_by (movie_id, studio_id) VALUES (?, ?)`,
		pb.MovieID, pb.StudioID).Error
	return translate(err)
}

// ResolveTitle 把人类可读的标题解析成唯一的 movie_id。
// 零命中返回 NotFoundError，多命中返回 AmbiguousTitleError（带候选年份）。
func (r *MovieRepository) ResolveTitle(title string) (*model.Movie, error) {
	var matches []model.Movie
	err := r.db.Raw(`
		SELECT movie_id, primary_title, original_title, title_type,
		       start_year, runtime_minutes, release_year
		FROM movies
		WHERE primary_title = ?`, title).Scan(&matches).Error
	if err != nil {
		return nil, translate(err)
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Kind: "movie", Value: title}
	case 1:
		return &matches[0], nil
	default:
		years := make([]int, len(matches))
		for i, m := range matches {
			years[i] = m.StartYear
		}
		return nil, &AmbiguousTitleError{Title: title, Years: years}
	}
}

// FindByID 根据 movie_id 查找电影，未找到时返回 (nil, nil)
func (r *MovieRepository) FindByID(movieID string) (*model.Movie, error) {
	var matches []model.Movie
	err := r.db.Raw(`
		SELECT movie_id, primary_title, original_title, title_type,
		       start_year, runtime_minutes, release_year
		FROM movies
		WHERE movie_id = ?`, movieID).Scan(&matches).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// SciFiMovie Q1 结果行
type SciFiMovie struct {
	MovieID        string `json:"movie_id" db:"movie_id"`
	PrimaryTitle   string `json:"primary_title" db:"primary_title"`
	StartYear      int    `json:"start_year" db:"start_year"`
	RuntimeMinutes int    `json:"runtime_minutes" db:"runtime_minutes"`
	Genre          string `json:"genre" db:"genre"`
}

// SciFiAfterYear Q1：某年之后的科幻电影，按年份升序。
// 年份比较是严格大于；类型名兼容数据源里的两种写法。
func (r *MovieRepository) SciFiAfterYear(minYear int) ([]SciFiMovie, error) {
	var rows []SciFiMovie
	err := r.db.Raw(`
		SELECT m.movie_id, m.primary_title, m.start_year, m.runtime_minutes,
		       g.name AS genre
		FROM movies m
		JOIN has_genre hg ON hg.movie_id = m.movie_id
		JOIN genres g ON g.genre_id = hg.genre_id
		WHERE m.start_year > ?
		  AND g.name IN ('Sci-Fi', 'Science Fiction')
		ORDER BY m.start_year ASC, m.primary_title ASC`, minYear).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// AwardWin Q6 结果行
type AwardWin struct {
	MovieID      string `json:"movie_id" db:"movie_id"`
	PrimaryTitle string `json:"primary_title" db:"primary_title"`
	ReleaseYear  int    `json:"release_year" db:"release_year"`
	AwardName    string `json:"award_name" db:"award_name"`
	AwardYear    int    `json:"award_year" db:"award_year"`
}

// AwardWinners Q6：奖项名包含关键词（大小写不敏感的子串匹配）的获奖电影
func (r *MovieRepository) AwardWinners(keyword string) ([]AwardWin, error) {
	var rows []AwardWin
	err := r.db.Raw(`
		SELECT m.movie_id, m.primary_title, m.release_year,
		       a.name AS award_name, w.year AS award_year
		FROM movies m
		JOIN wins_award w ON w.movie_id = m.movie_id
		JOIN awards a ON a.award_id = w.award_id
		WHERE a.name ILIKE '%' || ? || '%'
		ORDER BY w.year DESC, m.primary_title ASC`, keyword).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// LongMovies Q11：时长严格大于阈值的电影，按时长降序
func (r *MovieRepository) LongMovies(minRuntime int) ([]model.Movie, error) {
	var rows []model.Movie
	err := r.db.Raw(`
		SELECT movie_id, primary_title, original_title, title_type,
		       start_year, runtime_minutes, release_year
		FROM movies
		WHERE runtime_minutes > ?
		ORDER BY runtime_minutes DESC, primary_title ASC`, minRuntime).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
