package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/auth"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/character"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/cosign"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/generate"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/ipfs"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/keymgmt"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/mint"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/order"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/firebase"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/middleware"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/pkg/pubsub"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shipping"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/shop"
	"github.com/pogi-collective/pogi-marketplace-backend/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()
	pubsub.InitPubSub()
	db := setupDb()
	apiRouter := setupApiRouter(db)

	defer func() { pubsub.CloseClient() }()

	firebase.InitFirebaseSdk()

	port := viper.Get("PORT").(string)
	server := &http.Server{
		Addr:         port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	server.ListenAndServe()
}

func setupDb() *gorm.DB {
	dbUrl := viper.Get("DB_URL").(string)

	db, err := gorm.Open(postgres.Open(dbUrl), &gorm.Config{})

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	sqlDb, _ := db.DB()

	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func setupApiRouter(db *gorm.DB) *gin.Engine {
	apiRouter := gin.Default()
	routerGroup := apiRouter.Group("/pogi-api")

	middleware.RegisterGlobalMiddleware(apiRouter)

	shippingKeys := shipping.KeyConfig{
		PublicKeyHex: viper.Get("SHIPPING_PUBLIC_KEY").(string),
	}
	resolver := ipfs.NewResolver(strings.Split(viper.Get("IPFS_GATEWAYS").(string), ","))

	ws.RegisterRoutes(routerGroup)
	auth.RegisterRoutes(routerGroup)
	shop.RegisterRoutes(routerGroup, db)
	character.RegisterRoutes(routerGroup, db)
	ipfs.RegisterRoutes(routerGroup)
	generate.RegisterRoutes(routerGroup, resolver)
	mint.RegisterRoutesAndSubscriptions(routerGroup, db, shippingKeys)
	order.RegisterRoutesAndSubscriptions(routerGroup, db)
	cosign.RegisterRoutes(routerGroup, db)
	keymgmt.RegisterRoutes(routerGroup)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
