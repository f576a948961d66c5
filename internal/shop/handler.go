package shop

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type shopHandler struct {
	shop shopService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := shopHandler{
		shop: shopService{db: db},
	}

	routes := rg.Group("/shop")
	routes.GET("", handler.getMerchList)
}

func (h shopHandler) getMerchList(c *gin.Context) {
	items, err := h.shop.FindAllActive()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, items)
}
