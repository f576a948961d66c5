package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const adminRequired string = "error.token.admin-required"

// RequireAdmin must run after VerifyAuthToken. The admin allow-list is a
// comma-separated email list in ADMIN_EMAILS.
func RequireAdmin(context *gin.Context) {
	email := utils.GetUserEmail(context)

	for _, admin := range strings.Split(viper.Get("ADMIN_EMAILS").(string), ",") {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return
		}
	}

	log.Warn().Msg("Non-admin token on admin route: " + email)
	context.AbortWithStatusJSON(
		http.StatusForbidden,
		reject.NewProblem().
			WithTitle("Admin access required").
			WithStatus(http.StatusForbidden).
			WithCode(adminRequired).
			Build())
}
