package main

import (
	"log"
	"net/http"

	"pharmabrand/adapters/api"
	"pharmabrand/adapters/excel"
	"pharmabrand/adapters/llm"
	"pharmabrand/app"
	"pharmabrand/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:      appConfig.AI.APIKey,
		Temperature: appConfig.AI.Temperature,
		Timeout:     appConfig.AI.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	generator := llm.NewNarrativeAdapter(client, appConfig.AI.Model, appConfig.AI.MaxTokens)
	store := excel.NewWorkbookStore()
	service := app.NewPlanService(store, generator, appConfig.Paths.WorkbookFile)

	handler := api.NewHandler(service)
	addr := ":" + appConfig.Server.APIPort
	log.Printf("[API] Pharma Brand Manager API listening on %s", addr)
	if err := http.ListenAndServe(addr, handler.Routes()); err != nil {
		log.Fatalf("API server exited: %v", err)
	}
}
