// Bootstrap (composition root) Collector Service.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wastehub/internal/collector/adapter/in/in_amqp"
	"wastehub/internal/collector/adapter/in/transport"
	"wastehub/internal/collector/adapter/out/out_amqp"
	"wastehub/internal/collector/adapter/out/repo"
	"wastehub/internal/collector/application/usecase"
	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/config"
	db_conn "wastehub/internal/shared/db"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/mq"
	sharedtransport "wastehub/internal/shared/transport"
	"wastehub/internal/shared/ws"
)

// Run запускает Collector Service со всеми его компонентами
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "collector_service_starting", Message: "initializing collector service"})

	// Инфраструктура: PostgreSQL
	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	if err := db_conn.Migrate(ctx, dbPool, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// Инфраструктура: RabbitMQ
	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(mqConn); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// JWT + WebSocket hub для уведомлений сборщиков
	jwtService := auth.NewJWTService(cfg.JWT)
	wsHub := ws.NewHub(jwtService.ExtractUserID, log)
	go wsHub.Run()

	// Репозитории и publishers
	collectorRepo := repo.NewCollectorPgRepository(dbPool, log)
	eventPublisher := out_amqp.NewCollectorEventPublisher(mqConn, log)

	// Use cases
	registerUC := usecase.NewRegisterCollectorService(collectorRepo, jwtService, log)
	getUC := usecase.NewGetCollectorService(collectorRepo, log)
	listUC := usecase.NewListCollectorsService(collectorRepo, log)
	updateUC := usecase.NewUpdateProfileService(collectorRepo, log)
	availabilityUC := usecase.NewSetAvailabilityService(collectorRepo, eventPublisher, log)
	byDistrictUC := usecase.NewAvailableByDistrictService(collectorRepo, log)
	requestsUC := usecase.NewCollectorRequestsService(collectorRepo, log)

	// AMQP consumer: новые заявки -> WebSocket уведомления сборщикам
	createdConsumer := in_amqp.NewRequestCreatedConsumer(mqConn, collectorRepo, wsHub, log)
	go func() {
		if err := createdConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error(logger.Entry{
				Action:  "request_created_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// HTTP
	mux := http.NewServeMux()
	authMiddleware := sharedtransport.JWTMiddleware(jwtService, log)

	httpHandler := transport.NewHTTPHandler(
		registerUC, getUC, listUC, updateUC, availabilityUC, byDistrictUC, requestsUC,
		log,
	)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	// WebSocket endpoint для сборщиков
	mux.HandleFunc("/ws", wsHub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.CollectorServicePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "collector_service_stopped", Message: "collector service stopped"})
}
