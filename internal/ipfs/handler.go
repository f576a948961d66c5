package ipfs

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/spf13/viper"
)

type ipfsHandler struct {
	resolver *Resolver
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := ipfsHandler{
		resolver: NewResolver(strings.Split(viper.Get("IPFS_GATEWAYS").(string), ",")),
	}

	routes := rg.Group("/ipfs")
	routes.GET("/:cid", handler.resolve)
}

func (h ipfsHandler) resolve(c *gin.Context) {
	url, err := h.resolver.Resolve(c.Param("cid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
