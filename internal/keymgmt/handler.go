package keymgmt

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
)

type keyResponse struct {
	PublicKey  string `json:"publicKey"`
	ResourceId string `json:"resourceId"`
}

func RegisterRoutes(rg *gin.RouterGroup) {
	routes := rg.Group("/admin/keys")
	routes.Use(middleware.VerifyAuthToken, middleware.RequireAdmin)
	routes.POST("", provisionKey)
}

func provisionKey(c *gin.Context) {
	accountKey, privateKey, err := GenerateAsymetricKey(c.Request.Context(), 0, 1000)
	if err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return
	}

	c.JSON(http.StatusCreated, keyResponse{
		PublicKey:  accountKey.PublicKey.String(),
		ResourceId: privateKey.Value,
	})
}
