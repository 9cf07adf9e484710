// sentiric-numbering-service/cmd/numbering-service/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sentiric/sentiric-numbering-service/internal/app"
	"github.com/sentiric/sentiric-numbering-service/internal/config"
	"github.com/sentiric/sentiric-numbering-service/internal/logger"
)

var (
	ServiceVersion string
	GitCommit      string
	BuildDate      string
)

const serviceName = "numbering-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Konfigürasyon yüklenemedi: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Env, cfg.LogLevel)

	log.Info().
		Str("version", ServiceVersion).
		Str("commit", GitCommit).
		Str("build_date", BuildDate).
		Str("profile", cfg.Env).
		Str("default_region", cfg.DefaultRegion).
		Msg("🚀 numbering-service başlatılıyor...")

	if err := app.NewApp(cfg, log).Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Servis beklenmedik şekilde durdu")
	}
}
