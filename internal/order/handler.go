package order

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/inflight"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/model"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/reject"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/utils"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/ws"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"gorm.io/gorm"
)

const actionInFlight string = "error.order.action-already-in-flight"

type orderHandler struct {
	orders orderService
	guard  *inflight.Guard
}

type DecryptRequest struct {
	PrivateKey string `json:"privateKey"`
}

func RegisterRoutesAndSubscriptions(rg *gin.RouterGroup, db *gorm.DB) {
	handler := orderHandler{
		orders: orderService{
			db: db,
			bridge: &receiptContractBridge{
				db:              db,
				notificationHub: ws.NewNotificationHub(),
				publish:         pubsub.Publish,
			},
			newDecryptor: func(privateKeyHex string) shipping.Decryptor {
				return shipping.LocalKeyDecryptor{PrivateKeyHex: privateKeyHex}
			},
		},
		guard: inflight.NewGuard(),
	}

	routes := rg.Group("/orders")
	routes.GET("", middleware.VerifyAuthToken, handler.getOrders)
	routes.GET("/:id", middleware.VerifyAuthToken, handler.getOrder)

	admin := rg.Group("/admin/orders")
	admin.Use(middleware.VerifyAuthToken, middleware.RequireAdmin)
	admin.GET("", handler.getAllOrders)
	admin.POST("/:id/ship", handler.markShipped)
	admin.POST("/:id/tracking", handler.addTracking)
	admin.POST("/:id/decrypt", handler.decryptShipping)

	go pubsub.Subscribe(pubsub.SubscriptionHandler{
		SubscriptionId: "blockchain.flow.events.receipt-shipped",
		Handler:        handler.orders.bridge.handleReceiptShipped,
	})

	go pubsub.Subscribe(pubsub.SubscriptionHandler{
		SubscriptionId: "blockchain.flow.events.receipt-tracking-updated",
		Handler:        handler.orders.bridge.handleTrackingUpdated,
	})

	// DELIVERED has no API trigger; it only ever arrives from outside
	go pubsub.Subscribe(pubsub.SubscriptionHandler{
		SubscriptionId: "blockchain.flow.events.receipt-delivered",
		Handler:        handler.orders.bridge.handleReceiptDelivered,
	})
}

func (h orderHandler) getOrders(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	page, err := utils.NewPageRequest(c)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	receipts, count, err := h.orders.findByBuyer(page, address)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[model.Receipt]().
		WithItems(receipts).
		WithItemCount(*count)

	if nextToken := utils.NextPageToken(page, *count); nextToken != nil {
		response.WithNextPageToken(*nextToken)
	}

	c.JSON(http.StatusOK, response.Build())
}

func (h orderHandler) getOrder(c *gin.Context) {
	receipt, err := h.orders.findByReceiptId(c.Param("id"))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h orderHandler) getAllOrders(c *gin.Context) {
	page, err := utils.NewPageRequest(c)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	receipts, count, err := h.orders.findAll(page, model.OrderStatus(c.Query("status")))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[model.Receipt]().
		WithItems(receipts).
		WithItemCount(*count)

	if nextToken := utils.NextPageToken(page, *count); nextToken != nil {
		response.WithNextPageToken(*nextToken)
	}

	c.JSON(http.StatusOK, response.Build())
}

func (h orderHandler) markShipped(c *gin.Context) {
	receiptId := c.Param("id")

	if !h.guard.TryAcquire("ship", receiptId) {
		c.JSON(http.StatusConflict, inFlightProblem())
		return
	}
	defer h.guard.Release("ship", receiptId)

	if err := h.orders.markShipped(receiptId); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h orderHandler) addTracking(c *gin.Context) {
	receiptId := c.Param("id")

	body := TrackingRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if !h.guard.TryAcquire("tracking", receiptId) {
		c.JSON(http.StatusConflict, inFlightProblem())
		return
	}
	defer h.guard.Release("tracking", receiptId)

	if err := h.orders.addTracking(receiptId, body); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusAccepted)
}

func (h orderHandler) decryptShipping(c *gin.Context) {
	body := DecryptRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	info, err := h.orders.decryptShipping(c.Param("id"), body.PrivateKey)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	// plaintext exists in this response only, nothing is stored or logged
	c.JSON(http.StatusOK, info)
}

func inFlightProblem() reject.Problem {
	return reject.NewProblem().
		WithTitle("An update for this receipt is already in flight").
		WithStatus(http.StatusConflict).
		WithCode(actionInFlight).
		Build()
}
