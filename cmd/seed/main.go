package main

import (
	"context"
	"flag"
	"os"
	"time"

	"blogApp/internal/config"
	"blogApp/internal/db"
	"blogApp/internal/logger"
	"blogApp/internal/seed"
)

func main() {
	password := flag.String("password", "", "password given to every demo user (empty: no login)")
	flag.Parse()

	cfg, err := config.LoadWithDefaults()
	log := logger.New(logger.Config{Level: logger.ParseLevel("info")})
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Error("open db", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := seed.Run(ctx, d, *password)
	if err != nil {
		log.Error("seed database", "error", err)
		os.Exit(1)
	}
	log.Info("database seeded", "path", cfg.Database.Path, "users", res.Users, "blogs", res.Blogs)
}
