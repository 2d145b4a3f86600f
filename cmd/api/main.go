package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/wtmaxim/ocr-vision/internal/config"
	"github.com/wtmaxim/ocr-vision/internal/llm"
	"github.com/wtmaxim/ocr-vision/internal/ocr"
	"github.com/wtmaxim/ocr-vision/internal/router"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	log.Printf("OCR provider: %s (model %s)", cfg.Provider, cfg.Model)

	// ───────────────────────── CLIENT ─────────────────────────
	// One provider client for the process lifetime; no per-request
	// credential swapping.
	client := llm.NewVisionClient(cfg.Provider, cfg.APIKey, cfg.BaseURL, cfg.Model, nil)

	// ───────────────────────── ROUTES ─────────────────────────
	ocrHandler := ocr.NewHandler(ocr.NewService(client))
	r := router.New(ocrHandler)

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
