package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/taskboard/internal/api"
	"github.com/St1cky1/taskboard/internal/config"
	"github.com/St1cky1/taskboard/internal/infrastructure/auth"
	"github.com/St1cky1/taskboard/internal/infrastructure/client"
	"github.com/St1cky1/taskboard/internal/infrastructure/mail"
	"github.com/St1cky1/taskboard/internal/repository"
	"github.com/St1cky1/taskboard/internal/usecase"
	"github.com/St1cky1/taskboard/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var wg sync.WaitGroup

	cfg := config.Load()

	// Запускаем миграции
	if err := runMigrations(cfg.DatabaseURL()); err != nil {
		log.Fatal("❌ Ошибка миграций:", err)
	}

	// Подключаемся к БД
	db, err := client.NewPostgresClient(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД:", err)
	}
	defer db.Close()
	fmt.Println("✅ Подключение к БД установлено")

	// Подключаемся к RabbitMQ
	rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQURL())
	if err != nil {
		log.Fatal("❌ Ошибка подключения к RabbitMQ:", err)
	}
	defer rabbitMQ.Close()
	fmt.Println("✅ Подключение к RabbitMQ установлено")

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(db.Pool)
	taskRepo := repository.NewTaskRepository(db.Pool)
	commentRepo := repository.NewCommentRepository(db.Pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db.Pool)

	// Инициализируем сервисы
	passwordManager := auth.NewPasswordManager()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)

	taskService := usecase.NewTaskService(taskRepo, userRepo, commentRepo, rabbitMQ)
	authService := usecase.NewAuthService(userRepo, refreshTokenRepo, passwordManager, jwtManager, cfg.AdminInviteCode)
	userService := usecase.NewUserService(userRepo)

	// Запускаем воркер уведомлений
	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	notifyWorker := worker.NewNotifyWorker(cfg.RabbitMQURL(), sender)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("Запуск Notify Worker...")
		notifyWorker.Start(workerCtx)
	}()

	// Запускаем HTTP сервер
	router := api.NewRouter(taskService, authService, userService, jwtManager)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Printf("Запуск HTTP сервера на порту %s...\n", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("✅ Taskboard готов к работе!")
	fmt.Printf(" API: http://localhost:%s/api/tasks\n", cfg.ServerPort)
	fmt.Println("Для остановки нажмите Ctrl+C")

	// Ждем сигнал завершения
	waitForShutdown(server, workerCancel)
	wg.Wait()
	fmt.Println("✅ Приложение завершено корректно")
}

func waitForShutdown(server *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("Завершение работы...")

	// Останавливаем воркер
	workerCancel()

	// Даем время на graceful shutdown HTTP сервера
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Ошибка остановки сервера: %v", err)
	}
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	fmt.Println("✅ Миграции выполнены успешно")
	return nil
}
