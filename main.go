package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wastehub/internal/shared/config"
	"wastehub/internal/shared/logger"

	adminboot "wastehub/internal/admin/bootstrap"
	collectorboot "wastehub/internal/collector/bootstrap"
	requestboot "wastehub/internal/request/bootstrap"
)

func main() {
	svc := flag.String("service", "request", "request|collector|admin|all")
	flag.Parse()

	// .env опционален: в контейнере конфигурация приходит из окружения
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "request":
		log := logger.NewLogger("request-service")
		requestboot.Run(ctx, cfg, log)

	case "collector":
		log := logger.NewLogger("collector-service")
		collectorboot.Run(ctx, cfg, log)

	case "admin":
		log := logger.NewLogger("admin-service")
		adminboot.Run(ctx, cfg, log)

	case "all":
		requestLog := logger.NewLogger("request-service")
		collectorLog := logger.NewLogger("collector-service")
		adminLog := logger.NewLogger("admin-service")

		go requestboot.Run(ctx, cfg, requestLog)
		go collectorboot.Run(ctx, cfg, collectorLog)
		go adminboot.Run(ctx, cfg, adminLog)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}

	<-ctx.Done()
}
