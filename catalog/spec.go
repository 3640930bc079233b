package catalog

import "fmt"

// PendulumSpec describes a pendulum fitted with a rotary encoder.
type PendulumSpec struct {
	ArmLengthM        float64
	EncoderResolution int
	SampleRateHz      float64
}

func (PendulumSpec) Kind() Kind { return KindPendulum }

func (PendulumSpec) detailTitle() string { return "=== DETALLES DEL PÉNDULO CON ENCODER ===" }

func (s PendulumSpec) detailLines() []string {
	return []string{
		fmt.Sprintf("Longitud del Brazo: %.2f m", s.ArmLengthM),
		fmt.Sprintf("Resolución del Encoder: %d pulsos/revolución", s.EncoderResolution),
		fmt.Sprintf("Frecuencia de Muestreo: %.1f Hz", s.SampleRateHz),
	}
}

// PhotogateSpec describes a light barrier timing sensor.
type PhotogateSpec struct {
	ResponseTimeMs  float64
	SensorType      string
	DetectionRangeM float64
}

func (PhotogateSpec) Kind() Kind { return KindPhotogate }

func (PhotogateSpec) detailTitle() string { return "=== DETALLES DE LA FOTOPUERTA ===" }

func (s PhotogateSpec) detailLines() []string {
	return []string{
		fmt.Sprintf("Tiempo de Respuesta: %.3f ms", s.ResponseTimeMs),
		fmt.Sprintf("Tipo de Sensor: %s", s.SensorType),
		fmt.Sprintf("Rango de Detección: %.2f m", s.DetectionRangeM),
	}
}

// OscilloscopeSpec describes a digital oscilloscope.
type OscilloscopeSpec struct {
	Channels         int
	MaxSampleRateMHz float64
	MaxVoltageV      float64
	Resolution       string
}

func (OscilloscopeSpec) Kind() Kind { return KindOscilloscope }

func (OscilloscopeSpec) detailTitle() string { return "=== DETALLES DEL OSCILOSCOPIO ===" }

func (s OscilloscopeSpec) detailLines() []string {
	return []string{
		fmt.Sprintf("Número de Canales: %d", s.Channels),
		fmt.Sprintf("Frecuencia de Muestreo Máxima: %.1f MHz", s.MaxSampleRateMHz),
		fmt.Sprintf("Voltaje Máximo: %.1f V", s.MaxVoltageV),
		fmt.Sprintf("Resolución: %s", s.Resolution),
	}
}

// GeneratorSpec describes a signal generator.
type GeneratorSpec struct {
	Waveforms       string
	MaxFrequencyMHz float64
	MaxAmplitudeV   float64
	Mode            string
}

func (GeneratorSpec) Kind() Kind { return KindGenerator }

func (GeneratorSpec) detailTitle() string { return "=== DETALLES DEL GENERADOR DE SEÑALES ===" }

func (s GeneratorSpec) detailLines() []string {
	return []string{
		fmt.Sprintf("Tipos de Ondas: %s", s.Waveforms),
		fmt.Sprintf("Frecuencia Máxima: %.1f MHz", s.MaxFrequencyMHz),
		fmt.Sprintf("Amplitud Máxima: %.1f V", s.MaxAmplitudeV),
		fmt.Sprintf("Modo de Operación: %s", s.Mode),
	}
}

// SimulatorSpec describes a physics simulation package.
type SimulatorSpec struct {
	Domains   string
	Algorithm string
}

func (SimulatorSpec) Kind() Kind { return KindSimulator }

func (SimulatorSpec) detailTitle() string { return "=== DETALLES DEL SIMULADOR DE FÍSICA ===" }

func (s SimulatorSpec) detailLines() []string {
	return []string{
		fmt.Sprintf("Tipo de Simulación: %s", s.Domains),
		fmt.Sprintf("Algoritmo de Simulación: %s", s.Algorithm),
	}
}

var (
	_ Spec = PendulumSpec{}
	_ Spec = PhotogateSpec{}
	_ Spec = OscilloscopeSpec{}
	_ Spec = GeneratorSpec{}
	_ Spec = SimulatorSpec{}
)
