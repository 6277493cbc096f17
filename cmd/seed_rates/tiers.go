package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Columnas del CSV de tarifas, en este orden y separadas por ';' (exportación habitual
// de hojas de cálculo en español):
//
//	clase;nombre;desde;hasta;valor_m3;cargo_fijo;descripcion
//
// hasta vacío = tramo abierto. La primera fila es encabezado.
const csvColumns = 7

// decodeReader envuelve r según la codificación del archivo.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parseTiersCSV agrupa los tramos del archivo por clase conservando el orden de aparición.
func parseTiersCSV(r io.Reader, encoding string) (map[entity.CustomerClass][]*entity.RateTier, []entity.CustomerClass, error) {
	dr, err := decodeReader(r, encoding)
	if err != nil {
		return nil, nil, err
	}
	cr := csv.NewReader(dr)
	cr.Comma = ';'
	cr.FieldsPerRecord = csvColumns
	cr.TrimLeadingSpace = true

	byClass := make(map[entity.CustomerClass][]*entity.RateTier)
	var order []entity.CustomerClass
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer csv: %w", err)
		}
		if line == 1 {
			continue
		}
		tier, err := parseRecord(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if _, ok := byClass[tier.CustomerClass]; !ok {
			order = append(order, tier.CustomerClass)
		}
		byClass[tier.CustomerClass] = append(byClass[tier.CustomerClass], tier)
	}
	if len(order) == 0 {
		return nil, nil, errors.New("el archivo no tiene tramos")
	}
	return byClass, order, nil
}

func parseRecord(rec []string) (*entity.RateTier, error) {
	class := entity.CustomerClass(strings.ToLower(strings.TrimSpace(rec[0])))
	if !class.IsValid() {
		return nil, fmt.Errorf("clase inválida %q", rec[0])
	}
	from, err := parseAmount(rec[2])
	if err != nil {
		return nil, fmt.Errorf("desde: %w", err)
	}
	var to *decimal.Decimal
	if strings.TrimSpace(rec[3]) != "" {
		v, err := parseAmount(rec[3])
		if err != nil {
			return nil, fmt.Errorf("hasta: %w", err)
		}
		to = &v
	}
	rate, err := parseAmount(rec[4])
	if err != nil {
		return nil, fmt.Errorf("valor_m3: %w", err)
	}
	fixed := decimal.Zero
	if strings.TrimSpace(rec[5]) != "" {
		if fixed, err = parseAmount(rec[5]); err != nil {
			return nil, fmt.Errorf("cargo_fijo: %w", err)
		}
	}
	return &entity.RateTier{
		Name:          strings.TrimSpace(rec[1]),
		CustomerClass: class,
		TierFrom:      from,
		TierTo:        to,
		RatePerUnit:   rate,
		FixedCharge:   fixed,
		Description:   strings.TrimSpace(rec[6]),
	}, nil
}

// parseAmount acepta coma decimal ("1250,50").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(s)
}

// defaultTiers esquema de siete tramos: cargo básico, 5 m³ gratuitos y cinco bloques
// crecientes a partir de base.
func defaultTiers(base, fixed int64) []*entity.RateTier {
	open := func(from, to int64, name string, rate int64) *entity.RateTier {
		t := &entity.RateTier{
			Name:        name,
			TierFrom:    decimal.NewFromInt(from),
			RatePerUnit: decimal.NewFromInt(rate),
		}
		if to >= 0 {
			v := decimal.NewFromInt(to)
			t.TierTo = &v
		}
		return t
	}
	basic := open(0, 0, "Cargo básico", 0)
	basic.FixedCharge = decimal.NewFromInt(fixed)
	return []*entity.RateTier{
		basic,
		open(0, 5, "Consumo básico (0-5 m³)", 0),
		open(6, 10, "Bloque 1 (6-10 m³)", base),
		open(11, 15, "Bloque 2 (11-15 m³)", base+8),
		open(16, 20, "Bloque 3 (16-20 m³)", base+15),
		open(21, 25, "Bloque 4 (21-25 m³)", base+25),
		open(26, -1, "Bloque 5 (más de 25 m³)", base+32),
	}
}
