// Bootstrap (composition root) Request Service.
//
// Здесь собирается весь сервис: инфраструктура (PostgreSQL, RabbitMQ,
// WebSocket, JWT), репозитории, use cases, адаптеры и HTTP сервер.
// Зависимости создаются в одном месте и передаются в конструкторы.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wastehub/internal/catalog"
	ratingrepo "wastehub/internal/rating/adapter/out/repo"
	ratingtransport "wastehub/internal/rating/adapter/in/transport"
	ratingusecase "wastehub/internal/rating/application/usecase"
	"wastehub/internal/request/adapter/in/in_amqp"
	"wastehub/internal/request/adapter/in/transport"
	"wastehub/internal/request/adapter/out/out_amqp"
	"wastehub/internal/request/adapter/out/out_ws"
	"wastehub/internal/request/adapter/out/repo"
	"wastehub/internal/request/application/usecase"
	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/config"
	db_conn "wastehub/internal/shared/db"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/mq"
	sharedtransport "wastehub/internal/shared/transport"
	"wastehub/internal/shared/user"
	"wastehub/internal/shared/ws"
)

// Run запускает Request Service со всеми его компонентами
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "request_service_starting", Message: "initializing request service"})

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

	// JWT + WebSocket hub для уведомлений клиентов
	jwtService := auth.NewJWTService(cfg.JWT)
	wsHub := ws.NewHub(jwtService.ExtractUserID, log)
	go wsHub.Run()

	// Репозитории
	requestRepo := repo.NewRequestPgRepository(dbPool, log)
	profileRepo := repo.NewProfilePgRepository(dbPool, log)
	catalogRepo := repo.NewCatalogPgRepository(dbPool, log)
	ratingRepo := ratingrepo.NewRatingPgRepository(dbPool, log)
	catalogReadRepo := catalog.NewPgRepository(dbPool, log)
	userRepo := user.NewPgRepository(dbPool, log)

	// Publishers / notifiers
	eventPublisher := out_amqp.NewRequestEventPublisher(mqConn, log)
	requestNotifier := out_ws.NewWsRequestNotifier(wsHub, log)

	// Use cases: жизненный цикл заявки
	createUC := usecase.NewCreateRequestService(requestRepo, profileRepo, catalogRepo, eventPublisher, requestNotifier, log)
	getUC := usecase.NewGetRequestService(requestRepo, profileRepo, log)
	listUC := usecase.NewListRequestsService(requestRepo, profileRepo, log)
	updateUC := usecase.NewUpdateRequestService(requestRepo, profileRepo, catalogRepo, log)
	statusUC := usecase.NewUpdateStatusService(requestRepo, profileRepo, eventPublisher, requestNotifier, log)
	cancelUC := usecase.NewCancelRequestService(requestRepo, profileRepo, eventPublisher, log)
	deleteUC := usecase.NewDeleteRequestService(requestRepo, profileRepo, log)

	// Use cases: правила повторения
	getRecUC := usecase.NewGetRecurrenceService(requestRepo, profileRepo, log)
	listRecUC := usecase.NewListRecurrencesService(requestRepo, profileRepo, log)
	toggleRecUC := usecase.NewToggleRecurrenceService(requestRepo, profileRepo, log)
	upcomingUC := usecase.NewUpcomingCollectionsService(requestRepo, profileRepo, log)

	// Use cases: оценки
	submitRatingUC := ratingusecase.NewSubmitRatingService(ratingRepo, requestRepo, profileRepo, eventPublisher, log)
	updateRatingUC := ratingusecase.NewUpdateRatingService(ratingRepo, profileRepo, log)
	deleteRatingUC := ratingusecase.NewDeleteRatingService(ratingRepo, profileRepo, log)
	listRatingsUC := ratingusecase.NewListRatingsService(ratingRepo, log)
	statsUC := ratingusecase.NewCollectorStatsService(ratingRepo, log)

	// AMQP consumer: отмены заявок -> WebSocket уведомления клиентам
	cancelledConsumer := in_amqp.NewRequestCancelledConsumer(mqConn, profileRepo, requestNotifier, log)
	go func() {
		if err := cancelledConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error(logger.Entry{
				Action:  "request_cancelled_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// HTTP
	mux := http.NewServeMux()
	authMiddleware := sharedtransport.JWTMiddleware(jwtService, log)

	httpHandler := transport.NewHTTPHandler(
		createUC, getUC, listUC, updateUC, statusUC, cancelUC, deleteUC,
		getRecUC, listRecUC, toggleRecUC, upcomingUC,
		log,
	)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	ratingHandler := ratingtransport.NewHTTPHandler(submitRatingUC, updateRatingUC, deleteRatingUC, listRatingsUC, statsUC, log)
	ratingHandler.RegisterRoutes(mux, authMiddleware)

	catalogHandler := catalog.NewHTTPHandler(catalogReadRepo, log)
	catalogHandler.RegisterRoutes(mux)

	authHandler := user.NewAuthHandler(userRepo, jwtService, log)
	authHandler.RegisterRoutes(mux, authMiddleware)

	// WebSocket endpoint для real-time уведомлений
	mux.HandleFunc("/ws", wsHub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.RequestServicePort)
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

	log.Info(logger.Entry{Action: "request_service_stopped", Message: "request service stopped"})
}
