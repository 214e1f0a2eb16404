package middleware

import (
	"strings"

	"hr_training_backend/internal/config"
	"hr_training_backend/internal/model"
	"hr_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("employee", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.EmployeeRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetEmployeeFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			// 管理员拥有全部权限，直接放行
			if claims.Role == model.Admin {
				hasRole = true
				break
			}
			if claims.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type EmployeeActivityRepo interface {
	UpdateLastSeen(employeeID uint) error
}

func ActivityMiddleware(repo EmployeeActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetEmployeeFromContext(c)
		if claims != nil {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastSeen(claims.EmployeeID)
		}
		c.Next()
	}
}
