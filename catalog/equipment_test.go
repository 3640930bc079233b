package catalog_test

import (
	"strings"
	"testing"

	"github.com/advdv/labhttp/catalog"
	"github.com/stretchr/testify/require"
)

func TestDetailsRendersCommonAndKindFields(t *testing.T) {
	e := &catalog.Equipment{
		ID:             "OSC001",
		Name:           "Osciloscopio Digital 4CH",
		Manufacturer:   "Tektronix",
		PowerDrawWatts: 85,
		Description:    "4 canales",
		Spec: catalog.OscilloscopeSpec{
			Channels: 4, MaxSampleRateMHz: 100, MaxVoltageV: 10, Resolution: "12 bits",
		},
	}

	d := e.Details()
	lines := strings.Split(d, "\n")

	require.Equal(t, "=== DETALLES DEL OSCILOSCOPIO ===", lines[0])
	require.Contains(t, d, "ID: OSC001\n")
	require.Contains(t, d, "Consumo Eléctrico: 85.00 W\n")
	require.Contains(t, d, "Número de Canales: 4\n")
	require.Contains(t, d, "Resolución: 12 bits\n")
	require.Contains(t, d, "Características: 4 canales\n")
	require.Equal(t, strings.Repeat("=", len([]rune(lines[0]))), lines[len(lines)-1])

	require.Equal(t, catalog.KindOscilloscope, e.Kind())
	require.Equal(t, "Osciloscopio", e.Type())
	require.Equal(t, "OSC001 - Osciloscopio Digital 4CH (Osciloscopio) - Tektronix - 85.00W", e.String())
}

func TestDetailsWithoutSpec(t *testing.T) {
	e := &catalog.Equipment{ID: "X1", Name: "Bare"}
	require.True(t, strings.HasPrefix(e.Details(), "=== DETALLES DEL EQUIPO ===\n"))
	require.Equal(t, catalog.Kind(""), e.Kind())
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]catalog.Kind{
		"pendulum":     catalog.KindPendulum,
		" Photogate ":  catalog.KindPhotogate,
		"OSCILLOSCOPE": catalog.KindOscilloscope,
		"generator":    catalog.KindGenerator,
		"simulator":    catalog.KindSimulator,
	} {
		got, ok := catalog.ParseKind(in)
		require.True(t, ok, in)
		require.Equal(t, want, got)
	}

	_, ok := catalog.ParseKind("laser")
	require.False(t, ok)
}
