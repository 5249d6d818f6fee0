package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/malik80-glitch/accsolver/internal/api"
	"github.com/malik80-glitch/accsolver/internal/backend"
	"github.com/malik80-glitch/accsolver/internal/config"
	"github.com/malik80-glitch/accsolver/internal/redis"
	"github.com/malik80-glitch/accsolver/internal/service/chat"
	"github.com/malik80-glitch/accsolver/internal/service/topic"
	"github.com/malik80-glitch/accsolver/internal/session"
	"github.com/malik80-glitch/accsolver/internal/storage"
)

func main() {
	cfgPath := os.Getenv("ACCSOLVER_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, closeStore, err := openSnapshotStore(cfg)
	if err != nil {
		log.Fatalf("open snapshot store: %v", err)
	}
	defer closeStore()

	interval := time.Duration(cfg.BasicConfig.AutosaveIntervalSec) * time.Second
	store := session.NewStore(snapshots, interval)
	store.Restore(ctx)
	store.StartAutosave(ctx)

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.Providers["gemini"].APIKey
	}
	inference, err := backend.NewGemini(ctx, apiKey)
	if err != nil {
		log.Fatalf("init inference backend: %v", err)
	}

	var topics chat.TopicSuggester
	if provider := cfg.BasicConfig.TopicProvider; provider != "" {
		suggester, err := topic.NewSuggester(cfg, provider)
		if err != nil {
			log.Printf("topic suggestions disabled: %v", err)
		} else {
			topics = suggester
		}
	}

	chatService := chat.NewService(store, inference, topics, chat.Config{
		ChatModel:   cfg.BasicConfig.ChatModel,
		ImageModel:  cfg.BasicConfig.ImageModel,
		AspectRatio: cfg.BasicConfig.ImageAspectRatio,
		Temperature: 0.4,
	})

	router := gin.Default()
	api.NewHandler(chatService, store).RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// openSnapshotStore selects the durable backend: redis, or a SQL database
// (sqlite3 by default).
func openSnapshotStore(cfg *config.Config) (storage.SnapshotStore, func(), error) {
	backendType := cfg.BasicConfig.StorageBackend
	if backendType == "redis" {
		client, err := redis.NewClient(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create redis client: %w", err)
		}
		return redis.NewSnapshotStore(client), func() { client.Close() }, nil
	}

	db, err := storage.Open(backendType, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(db, backendType); err != nil {
		db.Close()
		return nil, nil, err
	}
	return storage.NewSQLStore(db), func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}
