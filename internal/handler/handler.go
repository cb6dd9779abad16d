package handler

import (
	"github.com/user/filmdb/internal/config"
	"github.com/user/filmdb/internal/repository"
	"github.com/user/filmdb/internal/service"
)

// Handler HTTP 处理器。展示层只做参数收集和结果渲染，
// 业务语义都在 service/repository 层。
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.Catalog
	Reviews *service.ReviewService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Catalog: service.NewCatalog(repos),
		Reviews: service.NewReviewService(repos),
	}
}
