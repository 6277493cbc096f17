package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Acueducto-api/internal/domain/entity"
	"github.com/jhoicas/Acueducto-api/internal/domain/tariff"
)

const sampleCSV = `clase;nombre;desde;hasta;valor_m3;cargo_fijo;descripcion
residential;Cargo básico;0;0;0;100;
residential;Consumo básico;0;5;0;;5 m³ sin costo
residential;Bloque 1;6;;15,50;;
commercial;Único;0;;22;250;Tarifa plana
`

func TestParseTiersCSV(t *testing.T) {
	byClass, order, err := parseTiersCSV(strings.NewReader(sampleCSV), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, []entity.CustomerClass{entity.ClassResidential, entity.ClassCommercial}, order)

	res := byClass[entity.ClassResidential]
	require.Len(t, res, 3)
	assert.Equal(t, "Cargo básico", res[0].Name)
	assert.True(t, res[0].FixedCharge.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, res[2].TierTo)
	assert.True(t, res[2].RatePerUnit.Equal(decimal.RequireFromString("15.5")), "coma decimal")
	assert.Equal(t, "5 m³ sin costo", res[1].Description)

	assert.Len(t, byClass[entity.ClassCommercial], 1)
}

func TestParseTiersCSV_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(sampleCSV))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "á", "el archivo ya no es UTF-8")

	byClass, _, err := parseTiersCSV(bytes.NewReader(raw), "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "Cargo básico", byClass[entity.ClassResidential][0].Name)
}

func TestParseTiersCSV_Errores(t *testing.T) {
	_, _, err := parseTiersCSV(strings.NewReader(sampleCSV), "ebcdic")
	assert.Error(t, err)

	_, _, err = parseTiersCSV(strings.NewReader("encabezado;a;b;c;d;e;f\n"), "")
	assert.Error(t, err, "sin tramos")

	bad := "clase;nombre;desde;hasta;valor_m3;cargo_fijo;descripcion\nresidential;x;cero;;1;;\n"
	_, _, err = parseTiersCSV(strings.NewReader(bad), "")
	assert.ErrorContains(t, err, "línea 2")

	short := "clase;nombre\nresidential;x\n"
	_, _, err = parseTiersCSV(strings.NewReader(short), "")
	assert.Error(t, err)
}

func TestDefaultTiers_FormanParticion(t *testing.T) {
	tiers := defaultTiers(15, 100)
	require.Len(t, tiers, 7)
	for _, tr := range tiers {
		tr.CustomerClass = entity.ClassResidential
	}
	assert.NoError(t, tariff.ValidatePartition(tiers))
	assert.True(t, tiers[0].FixedCharge.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, tiers[6].TierTo)
	assert.True(t, tiers[6].RatePerUnit.Equal(decimal.NewFromInt(47)))
}
