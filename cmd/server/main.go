package main

import (
	"context"
	"log"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jfuenzalida/restaurante-backend/internal/config"
	"github.com/jfuenzalida/restaurante-backend/internal/db"
	"github.com/jfuenzalida/restaurante-backend/internal/es"
	"github.com/jfuenzalida/restaurante-backend/internal/httpserver"
	"github.com/jfuenzalida/restaurante-backend/internal/logging"
	authmw "github.com/jfuenzalida/restaurante-backend/internal/middleware/auth"
	loggingmw "github.com/jfuenzalida/restaurante-backend/internal/middleware/logging"
	"github.com/jfuenzalida/restaurante-backend/internal/mykafka"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
		defer producer.Close()
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	searchHandler := &httpserver.SearchHTTP{Index: "products"}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("connecting to elasticsearch: %v", err)
		}
		searchHandler.ES = client
	} else {
		logger.Warn("ES_URL not set, search disabled")
	}

	r := repo.NewGormRepo(database)

	authSvc := &service.AuthService{
		Repo:          r,
		Producer:      producer,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}

	deps := &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Producer: producer}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Producer: producer}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Producer: producer}},
		ReportHandler:  &httpserver.ReportHTTP{Svc: &service.ReportService{Repo: r}},
		SearchHandler:  searchHandler,
		AuthMW:         &authmw.Middleware{JWTSecret: []byte(cfg.JWT_SECRET)},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	logger.Info("server starting", "addr", cfg.HTTP_ADDR)
	if err := e.Start(cfg.HTTP_ADDR); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
