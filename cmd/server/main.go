package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/recipecalc/internal/config"
	"github.com/mamadbah2/recipecalc/internal/repository"
	"github.com/mamadbah2/recipecalc/internal/repository/filestore"
	"github.com/mamadbah2/recipecalc/internal/repository/mongodb"
	"github.com/mamadbah2/recipecalc/internal/repository/sheets"
	"github.com/mamadbah2/recipecalc/internal/scheduler"
	"github.com/mamadbah2/recipecalc/internal/server/handlers"
	"github.com/mamadbah2/recipecalc/internal/server/router"
	"github.com/mamadbah2/recipecalc/internal/service/drafts"
	"github.com/mamadbah2/recipecalc/internal/service/pricing"
	"github.com/mamadbah2/recipecalc/pkg/clients/pricefeed"
	"github.com/mamadbah2/recipecalc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	switch cfg.Storage.Backend {
	case config.BackendMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo
	default:
		fileStore, err := filestore.New(cfg.Storage.IngredientsFile, cfg.Storage.RecipesFile, logger.Named(baseLogger, "repo.file"))
		if err != nil {
			baseLogger.Fatal("failed to init file store", zap.Error(err))
		}
		store = fileStore
	}

	var (
		exporter pricing.Exporter
		sources  []scheduler.NamedSource
	)

	if cfg.Sheets.Enabled() {
		values, err := sheets.NewSpreadsheetValues(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets client", zap.Error(err))
		}
		priceSheet := sheets.NewPriceSheet(values, cfg.Sheets.IngredientRange, cfg.Sheets.ExportRange, baseLogger.Named("repo.sheets"))
		exporter = priceSheet
		sources = append(sources, scheduler.NamedSource{Name: "sheets", Source: priceSheet})
		baseLogger.Info("google sheets price sync enabled")
	} else {
		baseLogger.Warn("google sheets not configured, export and sheet refresh disabled")
	}

	if cfg.PriceFeed.Enabled() {
		sources = append(sources, scheduler.NamedSource{Name: "pricefeed", Source: pricefeed.NewClient(cfg.PriceFeed)})
		baseLogger.Info("remote price feed enabled", zap.String("url", cfg.PriceFeed.URL))
	}

	pricingSvc := pricing.NewService(store, exporter, cfg.Cache.EvaluationTTL, baseLogger.Named("svc.pricing"))
	if err := pricingSvc.Reload(context.Background()); err != nil {
		baseLogger.Fatal("failed to load catalogue", zap.Error(err))
	}
	draftMgr := drafts.NewManager(pricingSvc, cfg.Drafts.TTL, baseLogger.Named("svc.drafts"))

	catalogueHandler := handlers.NewCatalogueHandler(pricingSvc, baseLogger.Named("handlers.catalogue"))
	draftHandler := handlers.NewDraftHandler(draftMgr, baseLogger.Named("handlers.drafts"))
	engine := router.New(catalogueHandler, draftHandler, cfg.Server.CORSAllowOrigin, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Refresh, pricingSvc, sources, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
