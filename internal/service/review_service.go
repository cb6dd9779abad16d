package service

import (
	"strconv"
	"time"

	"github.com/user/filmdb/internal/model"
	"github.com/user/filmdb/internal/repository"
	"gorm.io/gorm"
)

// ReviewService 影评写入工作流：标题解析 → 校验 → 插入，整体是一个事务。
// 任何一步失败都不会留下半截数据。
type ReviewService struct {
	repos *repository.Repositories
}

// NewReviewService 创建影评服务
func NewReviewService(repos *repository.Repositories) *ReviewService {
	return &ReviewService{repos: repos}
}

// ReviewInput 影评提交参数。PostTime 可选，缺省用服务端时间。
type ReviewInput struct {
	UserID     int
	MovieTitle string
	Rating     int
	Content    string
	PostTime   *time.Time
}

// Submit 提交一条影评。
// 标题必须精确解析到唯一电影：零命中报 NotFoundError，
// 多命中报 AmbiguousTitleError（按年份消歧不在本层职责内）。
// 提交不幂等，重复调用会追加新的影评行。
func (s *ReviewService) Submit(input ReviewInput) (*model.Review, error) {
	// 先挡掉明显越界的评分，存储层的 CHECK 约束是最后一道防线
	if input.Rating < 1 || input.Rating > 10 {
		return nil, &repository.ConstraintViolation{
			Constraint: "rating 必须在 [1,10] 区间内",
			Value:      strconv.Itoa(input.Rating),
		}
	}

	var review *model.Review
	err := s.repos.DB.Transaction(func(tx *gorm.DB) error {
		txRepos := repository.NewRepositories(tx)

		movie, err := txRepos.Movie.ResolveTitle(input.MovieTitle)
		if err != nil {
			return err
		}

		user, err := txRepos.User.FindByID(input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return &repository.ReferentialError{
				Relation: "users",
				Value:    strconv.Itoa(input.UserID),
			}
		}

		postTime := time.Now()
		if input.PostTime != nil {
			postTime = *input.PostTime
		}

		review = &model.Review{
			UserID:   user.UserID,
			MovieID:  movie.MovieID,
			PostTime: postTime,
			Content:  input.Content,
			Rating:   input.Rating,
		}
		return txRepos.Review.Insert(review)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
