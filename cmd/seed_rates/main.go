// seed_rates publica los esquemas tarifarios iniciales.
//
// Uso:
//
//	go run ./cmd/seed_rates                                   # esquemas por defecto
//	go run ./cmd/seed_rates -csv tarifas.csv -encoding windows-1252 -from 2025-01-01
//
// Cada clase se publica como una versión nueva: la vigente se cierra en -from.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Acueducto-api/pkg/config"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

// Tarifas por defecto por clase: valor base del bloque 1 y cargo fijo.
var defaults = []struct {
	class       entity.CustomerClass
	base, fixed int64
}{
	{entity.ClassResidential, 15, 100},
	{entity.ClassCommercial, 20, 200},
	{entity.ClassIndustrial, 25, 300},
}

func main() {
	csvPath := flag.String("csv", "", "archivo CSV con los tramos (opcional)")
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8, windows-1252, iso-8859-1")
	fromStr := flag.String("from", "", "inicio de vigencia YYYY-MM-DD (por defecto el primer día del mes)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	now := time.Now().UTC()
	effectiveFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if *fromStr != "" {
		if effectiveFrom, err = time.Parse("2006-01-02", *fromStr); err != nil {
			log.Fatal().Err(err).Msg("fecha -from inválida")
		}
	}

	byClass := make(map[entity.CustomerClass][]*entity.RateTier)
	var order []entity.CustomerClass
	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		byClass, order, err = parseTiersCSV(f, *encoding)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV")
		}
	} else {
		for _, d := range defaults {
			byClass[d.class] = defaultTiers(d.base, d.fixed)
			order = append(order, d.class)
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	svc := billing.NewRateScheduleService(postgres.NewTxRunner(pool), nil, log)
	failed := 0
	for _, class := range order {
		if _, err := svc.PublishSchedule(ctx, class, effectiveFrom, byClass[class]); err != nil {
			log.Error().Err(err).Str("class", string(class)).Msg("publicar esquema")
			failed++
		}
	}
	if failed > 0 {
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("classes", len(order)).Time("effective_from", effectiveFrom).Msg("tarifas publicadas")
}
