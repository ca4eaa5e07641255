package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"orders/cmd"
	"orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/customerrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	amqpConn, err := amqp.Dial(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()

	publisher, err := rabbitmq.NewPublisher(amqpConn, configs.RabbitMQExchange)
	if err != nil {
		log.Fatalf("Error creating event publisher: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := app.CreateJobManager(publisher)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	consumer, err := app.CreateEventConsumer(configs, amqpConn)
	if err != nil {
		log.Fatalf("Error creating event consumer: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if consumeErr := consumer.Run(ctx); consumeErr != nil {
			logger.ErrorContext(ctx, "Event consumer stopped", "error", consumeErr)
		}
	}()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:         goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:     goDotEnvVariable("REDIS_PASSWORD"),
		RedisInstance:     goDotEnvVariable("REDIS_INSTANCE"),
		RabbitMQURL:       goDotEnvVariable("RABBITMQ_URL"),
		RabbitMQExchange:  goDotEnvVariable("RABBITMQ_EXCHANGE"),
		RabbitMQQueue:     goDotEnvVariable("RABBITMQ_QUEUE"),
		VendorsAPIBaseURL: goDotEnvVariable("VENDORS_API_BASE_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&customerrepo.CustomerDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	createOrder := app.CreateCreateOrderCommandHandler()
	updateStatus := app.CreateUpdateOrderStatusCommandHandler()
	addItem := app.CreateAddOrderItemCommandHandler()
	removeItem := app.CreateRemoveOrderItemCommandHandler()
	updateQuantity := app.CreateUpdateItemQuantityCommandHandler()

	server := http.NewServer(
		&createOrder,
		&updateStatus,
		&addItem,
		&removeItem,
		&updateQuantity,
		app.CreateGetOrderByIDQueryHandler(),
		app.CreateListOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
