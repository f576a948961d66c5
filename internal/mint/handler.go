package mint

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/inflight"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/ws"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"gorm.io/gorm"
)

const mintInFlight string = "error.mint.already-in-flight"

type mintHandler struct {
	mint  mintService
	guard *inflight.Guard
}

func RegisterRoutesAndSubscriptions(rg *gin.RouterGroup, db *gorm.DB, keys shipping.KeyConfig) {
	handler := mintHandler{
		mint: mintService{
			db:   db,
			keys: keys,
			bridge: &receiptContractBridge{
				db:              db,
				notificationHub: ws.NewNotificationHub(),
				publish:         pubsub.Publish,
			},
		},
		guard: inflight.NewGuard(),
	}

	routes := rg.Group("/mint")
	routes.POST("", middleware.VerifyAuthToken, handler.mintCharacter)

	go pubsub.Subscribe(pubsub.SubscriptionHandler{
		SubscriptionId: "blockchain.flow.events.receipt-minted",
		Handler:        handler.mint.bridge.handleReceiptMinted,
	})
}

func (h mintHandler) mintCharacter(c *gin.Context) {
	body := MintRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	buyer := strings.TrimSpace(body.BuyerAddress)
	if buyer == "" || strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}
	body.BuyerAddress = buyer

	// one outstanding mint per buyer; a double click must not produce two
	// mint transactions
	if !h.guard.TryAcquire("mint", buyer) {
		c.JSON(http.StatusConflict, reject.NewProblem().
			WithTitle("A mint for this wallet is already in flight").
			WithStatus(http.StatusConflict).
			WithCode(mintInFlight).
			Build())
		return
	}
	defer h.guard.Release("mint", buyer)

	if err := h.mint.mintCharacter(c.Request.Context(), body); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusAccepted)
}
