package auth

import (
	"github.com/gin-gonic/gin"
)

const tokenEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithIdp"

func RegisterRoutes(rg *gin.RouterGroup) {
	routes := rg.Group("/auth")
	routes.POST("/google", getIdentityPlatformTokenFromGoogleIdToken)
	routes.POST("/apple", getIdentityPlatformTokenFromAppleIdToken)
	routes.POST("/refresh", RefreshToken)
}
