package loader

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/advdv/labhttp/catalog"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf guesses the format from a file name or object key, JSON unless it ends in .yaml
// or .yml.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a catalog document and returns its records in document order.
func Decode(source string, data []byte, format Format, jsonPath string) ([]*catalog.Equipment, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Source: source, Message: "invalid yaml document", Cause: err}
		}

		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, &LoadError{Source: source, Message: "yaml document is not representable as json", Cause: err}
		}
	}

	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Source: source, Message: "invalid json document"}
	}

	arr := gjson.GetBytes(data, jsonPath)
	switch {
	case !arr.Exists():
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("path %q not found", jsonPath)}
	case !arr.IsArray():
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("path %q is not an array", jsonPath)}
	}

	var (
		items []*catalog.Equipment
		err   error
		idx   int
	)

	arr.ForEach(func(_, v gjson.Result) bool {
		var e *catalog.Equipment
		if e, err = recordFromJSON(v); err != nil {
			err = &LoadError{Source: source, Message: fmt.Sprintf("record %d", idx), Cause: err}
			return false
		}

		items = append(items, e)
		idx++

		return true
	})

	return items, err
}

func recordFromJSON(v gjson.Result) (*catalog.Equipment, error) {
	if !v.IsObject() {
		return nil, errors.Newf("expected an object, got %s", v.Type)
	}

	return newEquipment(record{
		ID:             v.Get("id").String(),
		Name:           v.Get("name").String(),
		Kind:           v.Get("kind").String(),
		Manufacturer:   v.Get("manufacturer").String(),
		PowerDrawWatts: v.Get("power_draw_watts").Float(),
		Description:    v.Get("description").String(),
		Attributes:     v.Get("attributes"),
	})
}

// record is the flat shape shared by every source before it becomes an Equipment.
type record struct {
	ID             string
	Name           string
	Kind           string
	Manufacturer   string
	PowerDrawWatts float64
	Description    string
	Attributes     gjson.Result
}

func newEquipment(r record) (*catalog.Equipment, error) {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return nil, errors.New("missing id")
	case strings.TrimSpace(r.Name) == "":
		return nil, errors.Newf("equipment %s: missing name", r.ID)
	case r.PowerDrawWatts < 0:
		return nil, errors.Newf("equipment %s: negative power draw %g", r.ID, r.PowerDrawWatts)
	}

	kind, ok := catalog.ParseKind(r.Kind)
	if !ok {
		return nil, errors.Newf("equipment %s: unknown kind %q", r.ID, r.Kind)
	}

	attr := r.Attributes.Get
	var spec catalog.Spec
	switch kind {
	case catalog.KindPendulum:
		spec = catalog.PendulumSpec{
			ArmLengthM:        attr("arm_length_m").Float(),
			EncoderResolution: int(attr("encoder_resolution").Int()),
			SampleRateHz:      attr("sample_rate_hz").Float(),
		}
	case catalog.KindPhotogate:
		spec = catalog.PhotogateSpec{
			ResponseTimeMs:  attr("response_time_ms").Float(),
			SensorType:      attr("sensor_type").String(),
			DetectionRangeM: attr("detection_range_m").Float(),
		}
	case catalog.KindOscilloscope:
		spec = catalog.OscilloscopeSpec{
			Channels:         int(attr("channels").Int()),
			MaxSampleRateMHz: attr("max_sample_rate_mhz").Float(),
			MaxVoltageV:      attr("max_voltage_v").Float(),
			Resolution:       attr("resolution").String(),
		}
	case catalog.KindGenerator:
		spec = catalog.GeneratorSpec{
			Waveforms:       attr("waveforms").String(),
			MaxFrequencyMHz: attr("max_frequency_mhz").Float(),
			MaxAmplitudeV:   attr("max_amplitude_v").Float(),
			Mode:            attr("mode").String(),
		}
	case catalog.KindSimulator:
		spec = catalog.SimulatorSpec{
			Domains:   attr("domains").String(),
			Algorithm: attr("algorithm").String(),
		}
	}

	return &catalog.Equipment{
		ID:             r.ID,
		Name:           r.Name,
		Manufacturer:   r.Manufacturer,
		PowerDrawWatts: r.PowerDrawWatts,
		Description:    r.Description,
		Spec:           spec,
	}, nil
}

// AttributesJSON renders the kind specific fields of e as the attributes object of a document.
func AttributesJSON(e *catalog.Equipment) (string, error) {
	var attrs map[string]any
	switch s := e.Spec.(type) {
	case catalog.PendulumSpec:
		attrs = map[string]any{
			"arm_length_m": s.ArmLengthM, "encoder_resolution": s.EncoderResolution, "sample_rate_hz": s.SampleRateHz,
		}
	case catalog.PhotogateSpec:
		attrs = map[string]any{
			"response_time_ms": s.ResponseTimeMs, "sensor_type": s.SensorType, "detection_range_m": s.DetectionRangeM,
		}
	case catalog.OscilloscopeSpec:
		attrs = map[string]any{
			"channels": s.Channels, "max_sample_rate_mhz": s.MaxSampleRateMHz,
			"max_voltage_v": s.MaxVoltageV, "resolution": s.Resolution,
		}
	case catalog.GeneratorSpec:
		attrs = map[string]any{
			"waveforms": s.Waveforms, "max_frequency_mhz": s.MaxFrequencyMHz,
			"max_amplitude_v": s.MaxAmplitudeV, "mode": s.Mode,
		}
	case catalog.SimulatorSpec:
		attrs = map[string]any{"domains": s.Domains, "algorithm": s.Algorithm}
	default:
		attrs = map[string]any{}
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		return "", errors.Wrapf(err, "encode attributes of %s", e.ID)
	}

	return string(data), nil
}
