package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// Health reports connectivity to the backing stores. Any degraded
// dependency turns the response into a 503 so load balancers can pull
// the instance.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		checks := gin.H{
			"postgres": pingPostgres(ctx, db),
			"redis":    pingRedis(ctx, rdb),
		}

		status := http.StatusOK
		overall := "ok"
		for _, state := range checks {
			if state != "up" {
				status = http.StatusServiceUnavailable
				overall = "degraded"
				break
			}
		}

		c.JSON(status, gin.H{
			"status": overall,
			"checks": checks,
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "down"
	}
	return "up"
}

func pingRedis(ctx context.Context, rdb *redis.Client) string {
	if rdb.Ping(ctx).Err() != nil {
		return "down"
	}
	return "up"
}
