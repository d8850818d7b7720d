// Bootstrap (composition root) Admin Service.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wastehub/internal/admin/adapter/in/transport"
	"wastehub/internal/admin/adapter/out/repo"
	"wastehub/internal/admin/application/usecase"
	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/config"
	db_conn "wastehub/internal/shared/db"
	"wastehub/internal/shared/logger"
	sharedtransport "wastehub/internal/shared/transport"
)

// Run запускает Admin Service со всеми его компонентами
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "admin_service_starting", Message: "initializing admin service"})

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

	jwtService := auth.NewJWTService(cfg.JWT)

	// Репозиторий и use cases
	adminRepo := repo.NewAdminPgRepository(dbPool, log)
	createUserUC := usecase.NewCreateUserService(adminRepo, log)
	listUsersUC := usecase.NewListUsersService(adminRepo, log)
	updateStatusUC := usecase.NewUpdateUserStatusService(adminRepo, log)
	overviewUC := usecase.NewGetOverviewService(adminRepo, log)

	// HTTP
	mux := http.NewServeMux()
	authMiddleware := sharedtransport.JWTMiddleware(jwtService, log)

	httpHandler := transport.NewHTTPHandler(createUserUC, listUsersUC, updateStatusUC, overviewUC, log)
	httpHandler.RegisterRoutes(mux, authMiddleware)

	addr := fmt.Sprintf(":%d", cfg.Services.AdminServicePort)
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

	log.Info(logger.Entry{Action: "admin_service_stopped", Message: "admin service stopped"})
}
