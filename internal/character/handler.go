package character

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type characterHandler struct {
	characters characterService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := characterHandler{
		characters: characterService{db: db},
	}

	routes := rg.Group("/characters")
	routes.GET("", handler.getCharacters)
	routes.GET("/leaderboard", handler.getLeaderboard)
}

func (h characterHandler) getCharacters(c *gin.Context) {
	page, err := utils.NewPageRequest(c)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	characters, count, err := h.characters.findAll(page)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[model.Character]().
		WithItems(characters).
		WithItemCount(*count)

	if nextToken := utils.NextPageToken(page, *count); nextToken != nil {
		response.WithNextPageToken(*nextToken)
	}

	c.JSON(http.StatusOK, response.Build())
}

func (h characterHandler) getLeaderboard(c *gin.Context) {
	entries, err := h.characters.leaderboard()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, entries)
}
