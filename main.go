package main

import (
	"log"

	"pharmabrand/adapters/excel"
	"pharmabrand/adapters/llm"
	"pharmabrand/app"
	"pharmabrand/internal/config"
	"pharmabrand/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
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

	server, err := ui.NewServer(ui.Config{
		Port:    appConfig.Server.Port,
		GinMode: appConfig.Server.GinMode,
	}, service)
	if err != nil {
		log.Fatalf("Failed to create UI server: %v", err)
	}

	log.Printf("Using strategy workbook: %s", appConfig.Paths.WorkbookFile)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
