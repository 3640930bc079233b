package catalog

import (
	"fmt"
	"strings"
)

// Kind tags the variant of an equipment record.
type Kind string

const (
	KindPendulum     Kind = "pendulum"
	KindPhotogate    Kind = "photogate"
	KindOscilloscope Kind = "oscilloscope"
	KindGenerator    Kind = "generator"
	KindSimulator    Kind = "simulator"
)

// Label returns the human readable type shown on pages.
func (k Kind) Label() string {
	switch k {
	case KindPendulum:
		return "Péndulo con Encoder"
	case KindPhotogate:
		return "Fotopuerta"
	case KindOscilloscope:
		return "Osciloscopio"
	case KindGenerator:
		return "Generador de Señales"
	case KindSimulator:
		return "Simulador de Física"
	default:
		return string(k)
	}
}

// ParseKind maps a document tag onto a known Kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPendulum, KindPhotogate, KindOscilloscope, KindGenerator, KindSimulator:
		return k, true
	default:
		return "", false
	}
}

// Spec is the kind specific payload of a record. The server never inspects it, it is only
// used when rendering details.
type Spec interface {
	Kind() Kind

	// detailTitle is the banner of the details rendering.
	detailTitle() string
	// detailLines are the "label: value" lines after the common fields.
	detailLines() []string
}

// Equipment is one immutable catalog record.
type Equipment struct {
	ID             string
	Name           string
	Manufacturer   string
	PowerDrawWatts float64
	Description    string
	Spec           Spec
}

// Kind returns the variant tag, empty when no spec is attached.
func (e *Equipment) Kind() Kind {
	if e.Spec == nil {
		return ""
	}
	return e.Spec.Kind()
}

// Type returns the human readable type label.
func (e *Equipment) Type() string {
	return e.Kind().Label()
}

// String is a single line summary.
func (e *Equipment) String() string {
	return fmt.Sprintf("%s - %s (%s) - %s - %.2fW", e.ID, e.Name, e.Type(), e.Manufacturer, e.PowerDrawWatts)
}

// Details renders the full multi-line text description of the record.
func (e *Equipment) Details() string {
	title := "=== DETALLES DEL EQUIPO ==="
	var extra []string
	if e.Spec != nil {
		title = e.Spec.detailTitle()
		extra = e.Spec.detailLines()
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "ID: %s\n", e.ID)
	fmt.Fprintf(&b, "Nombre: %s\n", e.Name)
	fmt.Fprintf(&b, "Fabricante: %s\n", e.Manufacturer)
	fmt.Fprintf(&b, "Consumo Eléctrico: %.2f W\n", e.PowerDrawWatts)
	for _, l := range extra {
		b.WriteString(l + "\n")
	}
	fmt.Fprintf(&b, "Características: %s\n", e.Description)
	b.WriteString(strings.Repeat("=", len([]rune(title))))

	return b.String()
}
