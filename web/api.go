package web

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/internal/reqlog"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Envelope wraps every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// EquipmentJSON is the API view of a record.
type EquipmentJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"nombre"`
	Type         string  `json:"tipo"`
	Manufacturer string  `json:"fabricante"`
	PowerDraw    float64 `json:"consumoElectrico"`
	Summary      string  `json:"resumenCaracteristicas"`
	Details      string  `json:"detalles"`
}

func toJSON(e *catalog.Equipment, _ int) EquipmentJSON {
	return EquipmentJSON{
		ID:           e.ID,
		Name:         e.Name,
		Type:         e.Type(),
		Manufacturer: e.Manufacturer,
		PowerDraw:    e.PowerDrawWatts,
		Summary:      e.Description,
		Details:      e.Details(),
	}
}

func writeJSON(w labhttp.ResponseWriter, env Envelope) error {
	w.SetContentType(labhttp.ContentTypeJSON)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return errors.Wrap(err, "failed to encode json")
	}

	return nil
}

func writeError(w labhttp.ResponseWriter, msg string) error {
	return writeJSON(w, Envelope{Message: msg})
}

func writeList(w labhttp.ResponseWriter, msg string, items []*catalog.Equipment) error {
	if len(items) == 0 {
		return writeError(w, "No se encontraron elementos")
	}

	return writeJSON(w, Envelope{
		Success: true,
		Message: fmt.Sprintf("%s (%d elemento(s))", msg, len(items)),
		Data:    lo.Map(items, toJSON),
	})
}

// APIList returns the records in the current order.
func (h *Handlers) APIList(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	return writeList(w, "Equipos del catálogo", h.reg.All())
}

// APIByID returns the record with the given id.
func (h *Handlers) APIByID(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	e, msg := h.lookup(r.PathValue("id"))
	if e == nil {
		return writeError(w, msg)
	}

	return writeJSON(w, Envelope{Success: true, Message: "Equipo encontrado", Data: toJSON(e, 0)})
}

// APIByName returns the records whose name contains the fragment.
func (h *Handlers) APIByName(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	frag := r.PathValue("fragment")
	if strings.TrimSpace(frag) == "" {
		return writeError(w, "Nombre no puede estar vacío")
	}

	items := h.reg.FindByName(frag)
	if len(items) == 0 {
		return writeError(w, "No se encontraron equipos con nombre: "+frag)
	}

	return writeList(w, "Se encontraron equipos", items)
}

// APISort reorders the registry by ascending power draw and returns the result.
func (h *Handlers) APISort(ctx context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	h.reg.SortByConsumption()
	reqlog.Log(ctx).Debug("catalog sorted by power draw")

	return writeList(w, "Equipos ordenados por consumo eléctrico", h.reg.All())
}

// APIDetails returns the detail text of a record together with the record itself.
func (h *Handlers) APIDetails(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	e, msg := h.lookup(r.PathValue("id"))
	if e == nil {
		return writeError(w, msg)
	}

	return writeJSON(w, Envelope{
		Success: true,
		Message: "Detalles del equipo",
		Data: struct {
			Details   string        `json:"detalles"`
			Equipment EquipmentJSON `json:"equipo"`
		}{e.Details(), toJSON(e, 0)},
	})
}

// lookup finds a record by its trimmed id, or returns the message explaining why not.
func (h *Handlers) lookup(id string) (*catalog.Equipment, string) {
	if strings.TrimSpace(id) == "" {
		return nil, "ID no puede estar vacío"
	}

	e, ok := h.reg.FindByID(strings.TrimSpace(id))
	if !ok {
		return nil, "No se encontró equipo con ID: " + id
	}

	return e, ""
}

// APIStats returns the power draw statistics of the catalog.
func (h *Handlers) APIStats(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	return writeJSON(w, Envelope{
		Success: true,
		Message: "Estadísticas del catálogo",
		Data:    h.reg.Stats(),
	})
}
