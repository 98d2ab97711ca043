package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"brokersearch/database"
	"brokersearch/districts"
	"brokersearch/importer"
	"brokersearch/internal/config"
	"brokersearch/internal/infrastructure/cache"
	"brokersearch/normalization"
	"brokersearch/server"
	"brokersearch/server/services"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск сервиса поиска брокеров...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	config.SetupLogger(cfg.LogLevel)

	tables, err := normalization.LoadReferenceTables(cfg.ReferencePath)
	if err != nil {
		log.Fatalf("Ошибка загрузки справочников: %v", err)
	}
	log.Printf("Справочники: %d алиасов, %d групп синонимов", tables.Aliases.Len(), tables.Synonyms.Len())

	loader, watchedPath, closeSource, err := newShowingsLoader(cfg)
	if err != nil {
		log.Fatalf("Ошибка открытия источника показов: %v", err)
	}
	defer closeSource()

	districtStore := districts.NewFileStore(cfg.DistrictsPath)
	dataset := cache.NewDatasetCache(loader, watchedPath)
	defer dataset.Stop()

	if cfg.WatchFiles {
		districtsAbs, _ := filepath.Abs(cfg.DistrictsPath)
		dataset.OnChange(func(path string) {
			if path == districtsAbs {
				districtStore.Invalidate()
				slog.Info("districts reference changed", "path", path)
			}
		})
		if err := dataset.Watch(cfg.DistrictsPath); err != nil {
			log.Printf("Предупреждение: наблюдение за файлами не запущено: %v", err)
		}
	}

	matcher := normalization.NewMatcher(tables.Aliases, normalization.WithFuzzyCutoff(cfg.ObjectFuzzyCutoff))
	searchService := services.NewSearchService(dataset, districtStore, tables,
		services.WithDays(cfg.SearchDays),
		services.WithMatcher(matcher),
		services.WithDistrictCutoff(cfg.DistrictFuzzyCutoff),
	)

	srv := server.NewServer(cfg, searchService)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	log.Printf("Источник показов: %s (%s), районы: %s, окно поиска: %d дней",
		cfg.ShowingsSource, watchedPath, cfg.DistrictsPath, cfg.SearchDays)
	log.Println("═══════════════════════════════════════════════════════")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Получен сигнал остановки...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Ошибка остановки сервера: %v", err)
	}
}

// newShowingsLoader открывает источник показов по конфигурации.
// Возвращает путь к файлу, по изменению которого сбрасывается кэш.
func newShowingsLoader(cfg *config.Config) (cache.ShowingsLoader, string, func(), error) {
	if cfg.ShowingsSource == config.SourceSQLite {
		db, err := database.NewShowingsDB(cfg.ShowingsDBPath)
		if err != nil {
			return nil, "", nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Printf("Ошибка закрытия базы показов: %v", err)
			}
		}
		return db, cfg.ShowingsDBPath, closeDB, nil
	}
	return importer.NewFileSource(cfg.ShowingsPath), cfg.ShowingsPath, func() {}, nil
}
