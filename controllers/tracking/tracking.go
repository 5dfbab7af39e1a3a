package trackingControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-go/ecommerce-api/tracking"
)

// GET /api/tracking/:trackingNumber?carrier=envia|correios
func TrackOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		carrier := c.DefaultQuery("carrier", "envia")
		tracker := tracking.ForCarrier(carrier)

		result := tracker.Track(c.Request.Context(), c.Param("trackingNumber"))
		if result.IsError {
			c.JSON(http.StatusBadGateway, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
