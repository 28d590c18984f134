package handlers

import (
	"net/http"

	"buzzwordz-backend/pkg/cache"

	"github.com/gin-gonic/gin"
)

func ClearCache(cacheService *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		cacheType := c.DefaultQuery("type", "all")

		var err error

		switch cacheType {
		case "pages":
			err = cacheService.InvalidatePagesCache()
		case "menu":
			err = cacheService.InvalidateMenu()
		case "sessions":
			err = cacheService.DeletePattern("quiz:session:*")
		case "all":
			err = cacheService.FlushAll()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cache type"})
			return
		}

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "cache cleared successfully",
			"type":    cacheType,
		})
	}
}
