package appServer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-ticketing/config"
	repository "event-ticketing/internal/database/postgres"
	"event-ticketing/internal/service"
	"event-ticketing/internal/transport"
	"event-ticketing/internal/worker"
	"event-ticketing/pkg/postgres"
	"event-ticketing/pkg/queue"
	"event-ticketing/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification queue is optional; without redis the service still
	// admits bookings, it just skips notification hand-off.
	var taskPublisher service.TaskPublisher
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()

		queueConfig := queue.DefaultRedisQueueConfig()
		queueConfig.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		queueConfig.Password = cfg.Redis.Password
		queueConfig.DB = cfg.Redis.DB

		retryManager := queue.NewRetryManager(3, 5*time.Second)
		dlqHandler := queue.NewDefaultDLQHandler(redisClient, queueConfig.DLQ)

		redisQueue, err := queue.NewRedisQueue(queueConfig, retryManager, dlqHandler)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without notifications...", err)
		} else {
			defer redisQueue.Close()
			taskPublisher = service.NewQueueAdapter(redisQueue)

			notificationWorker := worker.NewNotificationWorker(redisQueue)
			go notificationWorker.Start(ctx)
		}
	} else {
		logrus.Warn("Redis disabled, notifications are off")
	}

	// Services
	eventService := service.NewEventService(eventRepo, bookingRepo)
	ticketService := service.NewTicketService(ticketTypeRepo, eventRepo, bookingRepo)
	bookingService := service.NewBookingService(bookingRepo, eventRepo, ticketTypeRepo, userRepo, taskPublisher)
	userService := service.NewUserService(userRepo)

	// Handlers
	eventHandler := transport.NewEventHandler(eventService)
	ticketHandler := transport.NewTicketHandler(ticketService)
	bookingHandler := transport.NewBookingHandler(bookingService)
	userHandler := transport.NewUserHandler(userService, cfg.JWT.Secret, cfg.JWT.Expiration)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerConfig := transport.RouterConfig{
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.Server.Timeout,
	}
	router := transport.InitRoutes(routerConfig, eventHandler, ticketHandler, bookingHandler, userHandler)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
