package generate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/ipfs"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type generateHandler struct {
	generation *generationService
	resolver   *ipfs.Resolver
}

type GenerateTextRequest struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

func RegisterRoutes(rg *gin.RouterGroup, resolver *ipfs.Resolver) {
	handler := generateHandler{
		generation: newGenerationService(),
		resolver:   resolver,
	}

	routes := rg.Group("/generate")
	routes.POST("", handler.generateText)
	routes.POST("/image", handler.generateImage)
}

func (h generateHandler) generateText(c *gin.Context) {
	body := GenerateTextRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if _, known := textFallbacks[body.Type]; !known {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": h.generation.generateText(body.Type, body.Prompt)})
}

func (h generateHandler) generateImage(c *gin.Context) {
	body := GenerateImageRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	placeholder, err := h.resolver.Resolve(viper.Get("PLACEHOLDER_IMAGE_CID").(string))
	if err != nil {
		log.Warn().Err(err).Msg("Cannot resolve placeholder image")
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": h.generation.generateImage(body.Prompt, placeholder)})
}
