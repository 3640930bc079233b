package loader

import (
	"context"

	"github.com/advdv/labhttp/catalog"
)

type builtinSource struct{}

// Builtin returns the source of the ten instruments the laboratory ships with: two of each
// kind, in the order they are listed on the catalog pages.
func Builtin() Source { return builtinSource{} }

func (builtinSource) String() string { return "builtin:" }

func (builtinSource) Load(context.Context) ([]*catalog.Equipment, error) {
	return []*catalog.Equipment{
		{
			ID: "PEN001", Name: "Péndulo Simple Digital", Manufacturer: "PASCO Scientific", PowerDrawWatts: 25.5,
			Description: "Péndulo con encoder rotatorio de alta precisión para estudios de movimiento armónico simple y amortiguado",
			Spec:        catalog.PendulumSpec{ArmLengthM: 0.75, EncoderResolution: 3600, SampleRateHz: 1000},
		},
		{
			ID: "PEN002", Name: "Péndulo Físico Avanzado", Manufacturer: "Vernier Software", PowerDrawWatts: 32,
			Description: "Sistema de péndulo físico con encoder de alta resolución y soporte para diferentes configuraciones",
			Spec:        catalog.PendulumSpec{ArmLengthM: 1.2, EncoderResolution: 7200, SampleRateHz: 2000},
		},
		{
			ID: "FPU001", Name: "Fotopuerta Dual Infrarroja", Manufacturer: "PASCO Scientific", PowerDrawWatts: 15,
			Description: "Sistema de doble fotopuerta para medición precisa de velocidad y aceleración",
			Spec:        catalog.PhotogateSpec{ResponseTimeMs: 0.1, SensorType: "Infrarrojo", DetectionRangeM: 0.5},
		},
		{
			ID: "FPU002", Name: "Fotopuerta Láser Precisión", Manufacturer: "Vernier Software", PowerDrawWatts: 22,
			Description: "Fotopuerta láser de alta precisión para mediciones de tiempo y velocidad en experimentos de cinemática",
			Spec:        catalog.PhotogateSpec{ResponseTimeMs: 0.05, SensorType: "Láser", DetectionRangeM: 1},
		},
		{
			ID: "OSC001", Name: "Osciloscopio Digital 4CH", Manufacturer: "Tektronix", PowerDrawWatts: 85,
			Description: "Osciloscopio digital de 4 canales con pantalla táctil y capacidades de análisis avanzado",
			Spec:        catalog.OscilloscopeSpec{Channels: 4, MaxSampleRateMHz: 100, MaxVoltageV: 10, Resolution: "12 bits"},
		},
		{
			ID: "OSC002", Name: "Osciloscopio Portátil", Manufacturer: "Keysight", PowerDrawWatts: 45,
			Description: "Osciloscopio portátil de 2 canales ideal para mediciones de campo y laboratorio básico",
			Spec:        catalog.OscilloscopeSpec{Channels: 2, MaxSampleRateMHz: 50, MaxVoltageV: 5, Resolution: "8 bits"},
		},
		{
			ID: "GEN001", Name: "Generador de Funciones DDS", Manufacturer: "Rigol Technologies", PowerDrawWatts: 40,
			Description: "Generador de funciones DDS con formas de onda arbitrarias y modulación avanzada",
			Spec: catalog.GeneratorSpec{
				Waveforms: "Senoidal, Cuadrada, Triangular, Ruido, Arbitraria", MaxFrequencyMHz: 25, MaxAmplitudeV: 10,
				Mode: "Continuo/Burst",
			},
		},
		{
			ID: "GEN002", Name: "Generador RF de Precisión", Manufacturer: "Agilent", PowerDrawWatts: 120,
			Description: "Generador de señales RF de alta precisión para experimentos de ondas electromagnéticas",
			Spec: catalog.GeneratorSpec{
				Waveforms: "Senoidal, FM, AM, PM", MaxFrequencyMHz: 1000, MaxAmplitudeV: 1, Mode: "CW/Modulado",
			},
		},
		{
			ID: "SIM001", Name: "Simulador de Mecánica Clásica", Manufacturer: "PhET Interactive", PowerDrawWatts: 150,
			Description: "Software de simulación interactiva para experimentos de mecánica clásica y ondas",
			Spec:        catalog.SimulatorSpec{Domains: "Mecánica, Ondas, Termodinámica", Algorithm: "Runge-Kutta 4"},
		},
		{
			ID: "SIM002", Name: "Simulador de Circuitos Eléctricos", Manufacturer: "NI Multisim", PowerDrawWatts: 200,
			Description: "Entorno de simulación completo para diseño y análisis de circuitos eléctricos y electrónicos",
			Spec: catalog.SimulatorSpec{
				Domains: "Circuitos DC/AC, Electrónica Digital, Análisis de Fourier", Algorithm: "SPICE",
			},
		},
	}, nil
}
