package fixture

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Router builds the fixture API router. Endpoint shapes mirror the
// production backend: report and bid payloads by date, the dates catalog,
// and raw CSV downloads. Missing dates return an empty 404, the same as
// upstream.
func Router(store *Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS())

	api := r.Group("/api")
	{
		api.GET("/report/:date", func(c *gin.Context) {
			payload, ok := store.Energy(c.Param("date"))
			if !ok {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, payload)
		})

		api.GET("/bids/:date", func(c *gin.Context) {
			payload, ok := store.Bids(c.Param("date"))
			if !ok {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, payload)
		})

		api.GET("/dates", func(c *gin.Context) {
			c.JSON(http.StatusOK, store.Dates())
		})

		api.GET("/downloads/energy/:date", func(c *gin.Context) {
			path, ok := store.CSVPath(c.Param("date"), false)
			if !ok {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(path)
		})

		api.GET("/downloads/bids/:date", func(c *gin.Context) {
			path, ok := store.CSVPath(c.Param("date"), true)
			if !ok {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(path)
		})
	}
	return r
}

// CORS adapts rs/cors for gin. The dashboard is served from the same
// host in practice; permissive credentials match the production backend's
// CORS setup.
func CORS() gin.HandlerFunc {
	h := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowCredentials: true,
	})
	return func(c *gin.Context) {
		h.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
