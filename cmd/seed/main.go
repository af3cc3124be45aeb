package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/backend"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	roomsPath := flag.String("rooms", "seeds/rooms.toml", "path to room catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Storage.Driver == config.DriverMemory {
		log.Fatal("Nothing to seed: storage.driver is memory (the API seeds it on start)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	storage, err := backend.Open(ctx, cfg, nil, nil, log)
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}

	n, err := backend.SeedRooms(ctx, storage.Rooms, *roomsPath)
	if closeErr := storage.Close(context.Background()); closeErr != nil {
		log.Error("Failed to close storage: %v", closeErr)
	}
	if err != nil {
		log.Fatal("Seeding failed: %v", err)
	}

	log.Info("Seeded %d rooms from %s into %s", n, *roomsPath, cfg.Storage.Driver)
}
