package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	bValidator "github.com/platz/goapi/base/validator"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/reconcile"
	mmiddleware "github.com/platz/goapi/middleware"
	"github.com/platz/goapi/service/chain"
	"github.com/platz/goapi/service/chain/contract"
	"github.com/platz/goapi/service/query"
	audit_repository "github.com/platz/goapi/stores/audit/repository"
	bid_delivery "github.com/platz/goapi/stores/bid/delivery/http"
	bid_repository "github.com/platz/goapi/stores/bid/repository"
	hc_delivery "github.com/platz/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/platz/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/platz/goapi/stores/healthcheck/usecase"
	landtoken_repository "github.com/platz/goapi/stores/landtoken/repository"
	pricehistory_delivery "github.com/platz/goapi/stores/pricehistory/delivery/http"
	pricehistory_repository "github.com/platz/goapi/stores/pricehistory/repository"
	pricehistory_usecase "github.com/platz/goapi/stores/pricehistory/usecase"
	reconcile_delivery "github.com/platz/goapi/stores/reconcile/delivery/http"
	reconcile_usecase "github.com/platz/goapi/stores/reconcile/usecase"
	transaction_repository "github.com/platz/goapi/stores/transaction/repository"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	auctionAddresses := make(map[int32]domain.Address)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		auctionAddr := networks.GetString(fmt.Sprintf("%s.auctionContract", k))
		auctionAddresses[chainId] = domain.Address(auctionAddr).ToLower()
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:       rpcs,
		ReadTimeout:   viper.GetDuration("chain.readTimeout"),
		MaxConcurrent: viper.GetInt("chain.maxConcurrent"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	transactor, err := chain.NewTransactor(context, &chain.TransactorCfg{
		RpcUrls:      rpcs,
		PrivateKey:   viper.GetString("chain.operatorKey"),
		PollInterval: viper.GetDuration("chain.pollInterval"),
	})
	if err != nil {
		context.WithField("err", err).Panic("failed to init transactor")
	}
	erc721Service := contract.NewErc721(&contract.Erc721Cfg{
		ChainService:   chainService,
		OwnerCacheSize: viper.GetInt("chain.ownerCacheSize"),
		OwnerCacheTtl:  viper.GetDuration("chain.ownerCacheTtl"),
	})
	auctionService := contract.NewLandAuction(&contract.LandAuctionCfg{
		ChainService: chainService,
		Transactor:   transactor,
		Addresses:    auctionAddresses,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	landTokenRepo := landtoken_repository.NewLandTokenRepo(q)
	collectionRepo := landtoken_repository.NewCollectionRepo(q)
	bidRepo := bid_repository.NewBidRepo(q)
	transactionRepo := transaction_repository.NewTransactionRepo(q)
	priceHistoryRepo := pricehistory_repository.NewPriceHistoryRepo(q)
	auditRepo := audit_repository.NewAuditRepo(q)

	hc := hc_usecase.New(hcRepo)
	priceHistory := pricehistory_usecase.New(&pricehistory_usecase.PriceHistoryUseCaseCfg{
		PriceHistoryRepo: priceHistoryRepo,
		LandTokenRepo:    landTokenRepo,
		CollectionRepo:   collectionRepo,
		BidRepo:          bidRepo,
	})
	reconcileService := reconcile_usecase.New(&reconcile_usecase.ReconcileUseCaseCfg{
		LandTokenRepo:   landTokenRepo,
		CollectionRepo:  collectionRepo,
		BidRepo:         bidRepo,
		TransactionRepo: transactionRepo,
		AuditRepo:       auditRepo,
		PriceHistoryUC:  priceHistory,
		Marketplace:     auctionService,
		Oracle:          erc721Service,
		Lenience: reconcile.LeniencePolicy{
			Enabled: viper.GetBool("reconcile.lenientValidation"),
		},
		DuplicateSaleWindow: viper.GetDuration("reconcile.duplicateSaleWindow"),
	})

	hc_delivery.New(e, hc)
	bid_delivery.New(e, reconcileService, bidRepo, auditRepo)
	reconcile_delivery.New(e, reconcileService, landTokenRepo)
	pricehistory_delivery.New(e, priceHistory, priceHistoryRepo)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
