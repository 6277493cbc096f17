// migrate aplica o revierte las migraciones embebidas del esquema de facturación.
//
// Uso:
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate -down      # revierte todo
//	go run ./cmd/migrate -steps -1  # un paso atrás
package main

import (
	"flag"
	"os"

	"github.com/jhoicas/Acueducto-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Acueducto-api/pkg/config"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revertir todas las migraciones")
	steps := flag.Int("steps", 0, "aplicar n pasos (negativo baja)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}

	switch {
	case *down:
		err = mg.Down()
	case *steps != 0:
		err = mg.Steps(*steps)
	default:
		err = mg.Up()
	}
	if closeErr := mg.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("cerrar migrador")
	}
	if err != nil {
		log.Error().Err(err).Msg("migración fallida")
		os.Exit(1)
	}
}
