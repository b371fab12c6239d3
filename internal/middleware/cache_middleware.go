package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cmondlane/moztickets/internal/cache"
)

func CacheMiddleware(catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("catalog_cache", catalog)
		c.Next()
	}
}

func GetCatalogCache(c *gin.Context) *cache.Catalog {
	catalog, exists := c.Get("catalog_cache")
	if !exists {
		return nil
	}
	return catalog.(*cache.Catalog)
}
