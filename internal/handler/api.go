package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/filmdb/internal/service"
	"github.com/user/filmdb/internal/utils"
)

// ==================== 查询目录 ====================

// SciFiMovies Q1 GET /api/queries/scifi?after=1990
func (h *Handler) SciFiMovies(c *gin.Context) {
	after, err := strconv.Atoi(c.Query("after"))
	if err != nil {
		utils.BadRequest(c, "after 必须是年份数字")
		return
	}
	rows, err := h.Catalog.SciFiAfterYear(after)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// MovieCast Q2 GET /api/queries/cast?title=Ten%20Lives
func (h *Handler) MovieCast(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		utils.BadRequest(c, "缺少 title 参数")
		return
	}
	rows, err := h.Catalog.CastOfMovie(title)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	// 演员表为空是合法结果，与"电影不存在"不同
	utils.Success(c, rows)
}

// MovieReviews Q3 GET /api/queries/reviews?title=...
func (h *Handler) MovieReviews(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		utils.BadRequest(c, "缺少 title 参数")
		return
	}
	rows, err := h.Catalog.ReviewsForMovie(title)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// MoviesByDirector Q4 GET /api/queries/by-director?name=...
func (h *Handler) MoviesByDirector(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.BadRequest(c, "缺少 name 参数")
		return
	}
	rows, err := h.Catalog.MoviesByDirector(name)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// StudioRating Q5 GET /api/queries/studio-rating?name=A24
func (h *Handler) StudioRating(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.BadRequest(c, "缺少 name 参数")
		return
	}
	rows, err := h.Catalog.AvgRatingByStudio(name)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// AwardWinners Q6 GET /api/queries/award-winners?keyword=Best%20Picture
func (h *Handler) AwardWinners(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		utils.BadRequest(c, "缺少 keyword 参数")
		return
	}
	rows, err := h.Catalog.AwardWinners(keyword)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// StudioActors Q7 GET /api/queries/studio-actors?before=1950
func (h *Handler) StudioActors(c *gin.Context) {
	before, err := strconv.Atoi(c.Query("before"))
	if err != nil {
		utils.BadRequest(c, "before 必须是年份数字")
		return
	}
	rows, err := h.Catalog.ActorsInStudiosFoundedBefore(before)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// WritersForDirector Q8 GET /api/queries/writers-for-director?name=...
func (h *Handler) WritersForDirector(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.BadRequest(c, "缺少 name 参数")
		return
	}
	rows, err := h.Catalog.WritersForDirector(name)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// UserFavorites Q9 GET /api/queries/favorites?user=...
func (h *Handler) UserFavorites(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		utils.BadRequest(c, "缺少 user 参数")
		return
	}
	rows, err := h.Catalog.FavoritesOfUser(user)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// TopRatedInGenre Q10 GET /api/queries/top-rated?genre=Horror
func (h *Handler) TopRatedInGenre(c *gin.Context) {
	genre := c.Query("genre")
	if genre == "" {
		utils.BadRequest(c, "缺少 genre 参数")
		return
	}
	rows, err := h.Catalog.TopRatedInGenre(genre)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// LongMovies Q11 GET /api/queries/long-movies?min_runtime=180
func (h *Handler) LongMovies(c *gin.Context) {
	minRuntime, err := strconv.Atoi(c.Query("min_runtime"))
	if err != nil {
		utils.BadRequest(c, "min_runtime 必须是分钟数")
		return
	}
	rows, err := h.Catalog.LongMovies(minRuntime)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// ActorsBornIn Q12 GET /api/queries/actors-born?year=1980
func (h *Handler) ActorsBornIn(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		utils.BadRequest(c, "year 必须是年份数字")
		return
	}
	rows, err := h.Catalog.ActorsBornIn(year)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, rows)
}

// PersonRoles GET /api/people/:id/roles 某人持有的角色集合
func (h *Handler) PersonRoles(c *gin.Context) {
	roles, err := h.Catalog.RolesOf(c.Param("id"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, gin.H{"person_id": c.Param("id"), "roles": roles.List()})
}

// ==================== 影评写入 ====================

// createReviewRequest 影评提交表单
type createReviewRequest struct {
	UserID     int        `json:"user_id" binding:"required,min=1"`
	MovieTitle string     `json:"movie_title" binding:"required"`
	Rating     int        `json:"rating" binding:"required,min=1,max=10"`
	Content    string     `json:"content" binding:"required"`
	PostTime   *time.Time `json:"post_time"`
}

// CreateReview POST /api/reviews 提交影评
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			utils.BadRequest(c, "参数校验失败: "+verrs[0].Field())
			return
		}
		utils.BadRequest(c, "请求体格式不正确")
		return
	}

	review, err := h.Reviews.Submit(service.ReviewInput{
		UserID:     req.UserID,
		MovieTitle: req.MovieTitle,
		Rating:     req.Rating,
		Content:    req.Content,
		PostTime:   req.PostTime,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, review)
}
