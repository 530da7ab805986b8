// main.go — точка входа Articles Query Service.
// Собирает конфигурацию, логгер, источник статей (PostgreSQL или in-memory),
// движок запросов, сервисный слой и HTTP-сервер.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nowordofalie/api-kata/internal/api/handlers"
	"github.com/nowordofalie/api-kata/internal/config"
	"github.com/nowordofalie/api-kata/internal/database"
	"github.com/nowordofalie/api-kata/internal/query"
	"github.com/nowordofalie/api-kata/internal/repository"
	"github.com/nowordofalie/api-kata/internal/server"
	"github.com/nowordofalie/api-kata/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Articles Query Service запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Реестр компараторов. Непокрытый ключ whitelist —
	// ошибка конфигурации, фатальная на старте.
	registry, err := query.NewRegistry()
	if err != nil {
		log.Fatalf("Ошибка конфигурации сортировки: %v", err)
	}
	engine := query.NewEngine(registry, logger)

	// 4. Источник статей: PostgreSQL или in-memory (локальный режим)
	var (
		repo    repository.ArticleRepository
		checker handlers.ReadinessChecker
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DBHost != "" {
		// Миграции до открытия пула
		if cfg.MigrateOnStart {
			if err := database.Migrate(cfg, logger); err != nil {
				log.Fatalf("Ошибка применения миграций: %v", err)
			}
		}

		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Ошибка подключения к PostgreSQL: %v", err)
		}
		defer pool.Close()

		repo = repository.NewArticleRepository(pool)
		checker = database.NewReadinessChecker(pool)

		// Мониторинг зависимостей (topologymetrics): проверка PostgreSQL
		// через *sql.DB-адаптер существующего пула.
		db := stdlib.OpenDBFromPool(pool)
		deph, err := service.NewDephealthService(
			"articles-query",
			cfg.DephealthGroup,
			db,
			cfg.DatabaseDSN(),
			cfg.DephealthCheckInterval,
			cfg.DephealthIsEntry,
			logger,
		)
		if err != nil {
			log.Fatalf("Ошибка инициализации dephealth: %v", err)
		}
		if err := deph.Start(ctx); err != nil {
			log.Fatalf("Ошибка запуска dephealth: %v", err)
		}
		defer deph.Stop()
	} else {
		logger.Warn("AQ_DB_HOST не задан — используется in-memory источник (локальный режим)")
		repo = repository.NewMemorySource()
		checker = handlers.AlwaysReady{}
	}

	// 5. Сервисный слой: LRU-кэш + сервис статей
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)
	articleService := service.NewArticleService(repo, engine, cache, logger)

	// 6. API handlers
	healthHandler := handlers.NewHealthHandler(checker)
	apiHandler := handlers.NewAPIHandler(healthHandler, articleService, logger)

	// 7. HTTP-сервер (блокирующий вызов с graceful shutdown)
	srv := server.New(cfg, logger, apiHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Articles Query Service остановлен")
}
