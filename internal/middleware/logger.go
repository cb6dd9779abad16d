package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 访问日志中间件。查询目录的接口全靠 query 参数区分语义，
// 所以连同参数一起记录，便于按查询定位慢请求。
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		target := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			target = target + "?" + raw
		}

		c.Next()

		log.Printf("%s %s | %d | %v | %s",
			c.Request.Method,
			target,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
