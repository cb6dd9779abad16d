package repository

import (
	"github.com/user/filmdb/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateBatch 批量写入预置用户
func (r *UserRepository) CreateBatch(users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	return translate(r.db.CreateInBatches(&users, 500).Error)
}

// AddFavorite 添加收藏，重复收藏同一部电影被复合主键拒绝
func (r *UserRepository) AddFavorite(f *model.Favorite) error {
	err := r.db.Exec(`INSERT INTO favorites (user_id, movie_id) VALUES (?, ?)`,
		f.UserID, f.MovieID).Error
	return translate(err)
}

// FindByID 根据 user_id 查找用户，未找到时返回 (nil, nil)
func (r *UserRepository) FindByID(userID int) (*model.User, error) {
	var rows []model.User
	err := r.db.Raw(`
		SELECT user_id, user_name FROM users WHERE user_id = ?`, userID).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FavoriteMovie Q9 结果行
type FavoriteMovie struct {
	MovieID      string `json:"movie_id" db:"movie_id"`
	PrimaryTitle string `json:"primary_title" db:"primary_title"`
	ReleaseYear  int    `json:"release_year" db:"release_year"`
}

// ExistsByName 用户名是否存在。用户群装载后固定，正面结论可被调用方记忆。
func (r *UserRepository) ExistsByName(userName string) (bool, error) {
	var count int64
	err := r.db.Raw(`SELECT COUNT(*) FROM users WHERE user_name = ?`, userName).Scan(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// FavoritesOfUser Q9：某用户收藏的电影。
// 用户名的存在性判定由调用方先行完成；收藏为空返回空序列。
func (r *UserRepository) FavoritesOfUser(userName string) ([]FavoriteMovie, error) {
	var rows []FavoriteMovie
	err := r.db.Raw(`
		SELECT m.movie_id, m.primary_title, m.release_year
		FROM users u
		JOIN favorites f ON f.user_id = u.user_id
		JOIN movies m ON m.movie_id = f.movie_id
		WHERE u.user_name = ?
		ORDER BY m.primary_title ASC, m.release_year ASC`, userName).Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
