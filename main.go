package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/verateam/vera-bot/bot"
	"github.com/verateam/vera-bot/config"
	"github.com/verateam/vera-bot/httpapi"
	"github.com/verateam/vera-bot/services"
	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/telegram"
	"github.com/verateam/vera-bot/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in production; everything can come from
		// the real environment.
		utils.InfoLogger.Println("no .env file, using process environment")
	}

	cfg := config.Load()
	if cfg.BotToken == "" {
		utils.ErrorLogger.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	st, err := store.Open(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("open database: %v", err)
	}
	if err := st.AutoMigrate(); err != nil {
		utils.ErrorLogger.Fatalf("migrate database: %v", err)
	}
	defer st.Close()

	router := bot.NewRouter(cfg, st)

	adapter, err := telegram.New(cfg.BotToken, router)
	if err != nil {
		utils.ErrorLogger.Fatalf("telegram: %v", err)
	}

	reminder := services.NewReminderService(st, adapter, router)
	reminder.Start()
	defer reminder.Stop()

	cleanup := services.NewCleanupService(st)
	cleanup.Start()
	defer cleanup.Stop()

	api := httpapi.NewServer(cfg, st)
	go func() {
		if err := api.Run(); err != nil {
			utils.ErrorLogger.Fatalf("http api: %v", err)
		}
	}()

	stop := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		utils.InfoLogger.Println("shutting down")
		close(stop)
	}()

	adapter.Run(stop)
}
