package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/RygelGasparTheOG/rycord/internal/handlers"
	"github.com/RygelGasparTheOG/rycord/internal/models"
	"github.com/RygelGasparTheOG/rycord/internal/store"
)

func setupLogger() (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"app.log", "stdout"}
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	sugar := logger.Sugar()
	defer logger.Sync()

	return sugar, nil
}

func readConfigFile() (models.ConfigFile, error) {
	cfg := models.ConfigFile{
		Address:   "",
		Port:      "8000",
		DataDir:   "rycord_data",
		StaticDir: "./public",
	}

	configFile, err := os.Open("config.json")
	if err != nil {
		return cfg, err
	}
	defer configFile.Close()

	bytes, err := io.ReadAll(configFile)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(bytes, &cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	fmt.Println("Setting up logger...")
	sugar, err := setupLogger()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Reading config file...")
	cfg, err := readConfigFile()
	if err != nil {
		sugar.Fatal(err)
	}
	if cfg.AdminPassword == "" {
		sugar.Fatal("AdminPassword must be set in config.json")
	}

	fmt.Println("Loading chat store...")
	chatStore, err := store.Open(cfg, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	// Flush everything on Ctrl+C. Every mutation is persisted as it
	// happens, so this only catches stragglers.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Println("\nSaving data...")
		if err := chatStore.Close(); err != nil {
			sugar.Error(err)
		}
		os.Exit(0)
	}()

	fmt.Printf("Server is running on http://localhost:%s\n", cfg.Port)

	err = handlers.Setup(&cfg, sugar, chatStore)
	if err != nil {
		sugar.Fatal(err)
	}
}
