package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/contas/internal/auth"
	"github.com/MrJamesThe3rd/contas/internal/config"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "token subject, e.g. the operator's name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.Secret == "" {
		slog.Error("AUTH_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TTL).Issue(*subject)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
