// controllers/dashboard_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
	Cache        *redis.Client // nil disables caching
	CacheTTL     time.Duration
}

func NewDashboardController(svc *services.DashboardService, cache *redis.Client, ttl time.Duration) *DashboardController {
	return &DashboardController{DashboardSvc: svc, Cache: cache, CacheTTL: ttl}
}

// GetDashboard computes the occupancy snapshot for ?date=YYYY-MM-DD (today
// when absent). Snapshots are served from Redis when a client is configured;
// cache failures fall through to a fresh computation.
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidDateFormat", "date must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	key := "dashboard:" + utils.DateOnly(asOf).Format(utils.DateLayout)

	if ctrl.Cache != nil {
		if raw, err := ctrl.Cache.Get(c.Request.Context(), key).Bytes(); err == nil {
			var cached services.DashboardSnapshot
			if json.Unmarshal(raw, &cached) == nil {
				c.JSON(http.StatusOK, gin.H{"dashboard": cached, "cached": true})
				return
			}
		}
	}

	snap, err := ctrl.DashboardSvc.Compute(asOf)
	if err != nil {
		log.Printf("GetDashboard error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.dashboard", "failed to compute dashboard")
		return
	}

	if ctrl.Cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			// best-effort; a dead cache must not fail the request
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = ctrl.Cache.Set(ctx, key, raw, ctrl.CacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": snap})
}
