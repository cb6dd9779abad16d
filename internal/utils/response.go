package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/filmdb/internal/repository"
)

// Response 统一API响应结构
type Response struct {
	Code    int         `json:"code"`    // 状态码
	Message string      `json:"message"` // 消息
	Data    interface{} `json:"data"`    // 数据
	Success bool        `json:"success"` // 是否成功
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    200,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
		Success: false,
	})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// FromError 按错误分类映射成响应：解析失败 404、标题歧义 409、
// 约束/引用失败 422、数据库不可达 503，其余一律 500。
// 分类错误自带出错标识，消息直接回给展示层。
func FromError(c *gin.Context, err error) {
	var (
		notFound   *repository.NotFoundError
		ambiguous  *repository.AmbiguousTitleError
		referental *repository.ReferentialError
		duplicate  *repository.DuplicateAssociationError
		constraint *repository.ConstraintViolation
		connectErr *repository.ConnectivityError
	)

	switch {
	case errors.As(err, &notFound):
		Error(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &ambiguous):
		Error(c, http.StatusConflict, ambiguous.Error())
	case errors.As(err, &referental):
		Error(c, http.StatusUnprocessableEntity, referental.Error())
	case errors.As(err, &duplicate):
		Error(c, http.StatusUnprocessableEntity, duplicate.Error())
	case errors.As(err, &constraint):
		Error(c, http.StatusUnprocessableEntity, constraint.Error())
	case errors.As(err, &connectErr):
		Error(c, http.StatusServiceUnavailable, "数据库暂时不可用，请稍后重试")
	default:
		Error(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
