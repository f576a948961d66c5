package cosign

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type cosignHandler struct {
	cosign *cosignService
}

type CosignRequest struct {
	Method  string         `json:"method"`
	Payload map[string]any `json:"payload"`
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := &cosignHandler{
		cosign: &cosignService{db: db},
	}

	routes := rg.Group("/cosign")
	routes.POST("", middleware.VerifyAuthToken, handler.handleCosign)
}

func (ch cosignHandler) handleCosign(c *gin.Context) {
	body := CosignRequest{}

	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	signature, err := ch.cosign.VerifyAndSign(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, signature)
}
