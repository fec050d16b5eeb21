package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpapi "github.com/immxrtalbeast/taskroom/internal/api/http"
	"github.com/immxrtalbeast/taskroom/internal/config"
	"github.com/immxrtalbeast/taskroom/internal/realtime"
	"github.com/immxrtalbeast/taskroom/internal/repository"
	"github.com/immxrtalbeast/taskroom/internal/repository/model"
	"github.com/immxrtalbeast/taskroom/internal/service"
	"github.com/immxrtalbeast/taskroom/internal/storage"
	"github.com/immxrtalbeast/taskroom/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	files, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Error("failed to prepare uploads directory", slog.Any("error", err))
		os.Exit(1)
	}

	roomRepo := repository.NewGormRoomRepository(db)
	taskRepo := repository.NewGormSharedTaskRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	hub := realtime.NewHub(log)

	chatService := service.NewChatService(messageRepo, hub, log, cfg.Chat.HistoryPageSize)
	taskService := service.NewTaskService(taskRepo, roomRepo, chatService, hub, files, log)
	roomService := service.NewRoomService(roomRepo, taskRepo, chatService, hub, log)
	userService := service.NewUserService(userRepo, log)

	roomController := httpapi.NewRoomController(roomService, taskService, files)
	userController := httpapi.NewUserController(userService)
	suggestController := httpapi.NewSuggestController()
	wsController := httpapi.NewWSController(roomService, chatService, hub, log)

	router := httpapi.SetupRouter(roomController, userController, suggestController, wsController, files.Dir())

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&model.Room{}, &model.SharedTask{}, &model.Message{}, &model.User{})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
