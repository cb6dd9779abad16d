package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/filmdb/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 查询目录 ====================
	queries := r.Group("/api/queries")
	{
		queries.GET("/scifi", h.SciFiMovies)
		queries.GET("/cast", h.MovieCast)
		queries.GET("/reviews", h.MovieReviews)
		queries.GET("/by-director", h.MoviesByDirector)
		queries.GET("/studio-rating", h.StudioRating)
		queries.GET("/award-winners", h.AwardWinners)
		queries.GET("/studio-actors", h.StudioActors)
		queries.GET("/writers-for-director", h.WritersForDirector)
		queries.GET("/favorites", h.UserFavorites)
		queries.GET("/top-rated", h.TopRatedInGenre)
		queries.GET("/long-movies", h.LongMovies)
		queries.GET("/actors-born", h.ActorsBornIn)
	}

	// ==================== 其他 API ====================
	api := r.Group("/api")
	{
		api.GET("/people/:id/roles", h.PersonRoles)
		api.POST("/reviews", h.CreateReview)
	}
}
