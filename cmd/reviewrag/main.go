package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"reviewrag/internal/config"
	"reviewrag/internal/domain"
	embollama "reviewrag/internal/embedding/ollama"
	llmollama "reviewrag/internal/llm/ollama"
	"reviewrag/internal/service"
	"reviewrag/internal/tui"
	"reviewrag/internal/vectorstore"
	"reviewrag/internal/vectorstore/disk"
	"reviewrag/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/reviewrag/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	emb := embollama.NewClient(embollama.Config{
		BaseURL: cfg.Embedder.BaseURL,
		Model:   cfg.Embedder.Model,
		Timeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "disk", "":
		st = disk.NewStorage(disk.Config{
			Dir:        cfg.VectorStore.Disk.Dir,
			Collection: cfg.VectorStore.Disk.Collection,
		})
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	gen := llmollama.NewClient(llmollama.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})

	svc := service.New(cfg.Dataset.Path, emb, st, gen, cfg.Retriever.TopK)
	indexed, err := svc.Ingest(context.Background())
	if err != nil {
		log.Fatalf("ingest failed: %v", ingestHint(err))
	}
	defer st.Close()
	if indexed > 0 {
		fmt.Printf("Indexed %d reviews from %s\n", indexed, cfg.Dataset.Path)
	}

	m := tui.New(svc, indexed)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

// ingestHint keeps the fatal message actionable: bad input reads differently
// from an unreachable local service.
func ingestHint(err error) error {
	switch {
	case errors.Is(err, domain.ErrService):
		return fmt.Errorf("%v (is Ollama running and the embedding model pulled?)", err)
	case errors.Is(err, domain.ErrBadInput):
		return fmt.Errorf("%v (check the CSV path and its Title, Review, Rating, Date columns)", err)
	default:
		return err
	}
}
