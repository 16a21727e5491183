package trips

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/travlr/internal/middleware"
)

// RegisterRoutes mounts the trip endpoints backed by MongoDB. uploader may be nil.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, uploader ImageUploader, jwtSecret string) {
	service := NewService(NewRepository(db), uploader)
	Mount(router, NewHandler(service), jwtSecret)
}

// Mount wires handler onto router. Reads are public, writes pass the auth gate.
func Mount(router *gin.RouterGroup, handler *Handler, jwtSecret string) {
	trips := router.Group("/trips")
	{
		trips.GET("", handler.List)
		trips.GET("/search", handler.Search)
		trips.GET("/:code", handler.Get)
	}

	protected := trips.Group("")
	protected.Use(middleware.Auth(jwtSecret))
	{
		protected.POST("", handler.Create)
		protected.PUT("/:code", handler.Update)
		protected.POST("/:code/image", handler.UploadImage)
	}
}
