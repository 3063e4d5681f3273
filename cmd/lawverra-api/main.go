package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/lawverra/lawverra-agent/internal/adapters/http"
	"github.com/lawverra/lawverra-agent/internal/adapters/llm"
	firestorestore "github.com/lawverra/lawverra-agent/internal/adapters/storage/firestore"
	memstore "github.com/lawverra/lawverra-agent/internal/adapters/storage/memory"
	"github.com/lawverra/lawverra-agent/internal/app/chat"
	"github.com/lawverra/lawverra-agent/internal/app/docpipe"
	"github.com/lawverra/lawverra-agent/internal/app/history"
	"github.com/lawverra/lawverra-agent/internal/config"
	"github.com/lawverra/lawverra-agent/internal/domain"
	"github.com/lawverra/lawverra-agent/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := observability.Logger()

	// Models: scripted mock for dev, Gemini otherwise.
	var (
		chatModel domain.ChatModel
		textModel domain.TextModel
	)

	if cfg.UseMockLLM {
		logger.Info("using scripted mock models")
		chatModel = &llm.ScriptedChatModel{}
		textModel = &llm.ScriptedTextModel{}
	} else {
		gcfg := llm.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			ChatModel: cfg.ChatModelName,
			TextModel: cfg.TextModelName,
		}
		if cfg.Mode == config.ModeGCP {
			gcfg.APIKey = ""
			gcfg.ProjectID = cfg.GCPProjectID
			gcfg.Location = cfg.GCPLocation
		}

		client, err := llm.NewGeminiClient(ctx, gcfg)
		if err != nil {
			log.Fatalf("error initializing gemini client: %v", err)
		}
		logger.Info("using gemini models", "chat_model", cfg.ChatModelName, "text_model", cfg.TextModelName)
		chatModel = client
		textModel = client
	}

	// Storage: Firestore or Memory
	var (
		records  domain.HistoryRecordStore
		docs     domain.DocumentStore
		profiles domain.ProfileStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		logger.Info("using firestore storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		records = fsStore
		docs = fsStore
		profiles = fsStore

	default:
		logger.Info("using in-memory storage")
		records = memstore.NewHistoryStore()
		docs = memstore.NewDocumentStore()
		profiles = memstore.NewProfileStore()
	}

	pipe := docpipe.New(textModel)
	hist := history.NewStore(records)
	svc := chat.NewService(chatModel, hist, docs, profiles, pipe)

	handler := httpadapter.WithDefaults(httpadapter.NewServer(svc), logger)

	addr := ":" + cfg.Port
	logger.Info("lawverra agent api listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
