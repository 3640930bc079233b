package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/internal/reqlog"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

var (
	//go:embed templates/*.html
	templates embed.FS

	//go:embed static/styles.css
	stylesheet []byte
)

// page names, each is parsed together with the layout.
const (
	pageHome    = "home"
	pageList    = "list"
	pageDetail  = "detail"
	pageMessage = "message"
)

// Handlers serve the catalog pages.
type Handlers struct {
	reg   *catalog.Registry
	pages map[string]*template.Template
}

// NewHandlers parses the templates. Links are resolved through mux at render time, so routes
// may be registered after this returns.
func NewHandlers(reg *catalog.Registry, mux *labhttp.ServeMux) (*Handlers, error) {
	funcs := template.FuncMap{
		"url": func(name string, vals ...string) (string, error) {
			return mux.Reverse(name, vals...)
		},
		"watts": func(w float64) string { return fmt.Sprintf("%.2f", w) },
	}

	h := &Handlers{reg: reg, pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pageList, pageDetail, pageMessage} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templates,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s template", name)
		}

		h.pages[name] = tmpl
	}

	return h, nil
}

func (h *Handlers) render(w labhttp.ResponseWriter, page string, data any) error {
	w.SetContentType(labhttp.ContentTypeHTML)
	if err := h.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		return errors.Wrapf(err, "failed to render %s page", page)
	}

	return nil
}

type listPage struct {
	Title string
	Items []*catalog.Equipment
}

func (h *Handlers) list(w labhttp.ResponseWriter, title string, items []*catalog.Equipment) error {
	return h.render(w, pageList, listPage{Title: title, Items: items})
}

func (h *Handlers) message(w labhttp.ResponseWriter, msg string) error {
	return h.render(w, pageMessage, msg)
}

// Home renders the landing page with the catalog statistics and the search forms.
func (h *Handlers) Home(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	all := h.reg.All()

	return h.render(w, pageHome, struct {
		Stats catalog.Stats
		Types []string
	}{
		Stats: h.reg.Stats(),
		Types: lo.Uniq(lo.Map(all, func(e *catalog.Equipment, _ int) string { return e.Type() })),
	})
}

// List renders every record in the current registry order.
func (h *Handlers) List(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	return h.list(w, "Listado Completo de Equipos", h.reg.All())
}

// Sort reorders the registry by ascending power draw and renders the result. The new order
// is kept for later requests.
func (h *Handlers) Sort(ctx context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	h.reg.SortByConsumption()
	reqlog.Log(ctx).Debug("catalog sorted by power draw")

	return h.list(w, "Equipos Ordenados por Consumo Eléctrico", h.reg.All())
}

// Styles serves the stylesheet.
func (h *Handlers) Styles(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
	w.SetContentType(labhttp.ContentTypeCSS)
	_, err := w.Write(stylesheet)

	return err
}

// ByID renders the record with the given id, or a message when there is none.
func (h *Handlers) ByID(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	id := r.PathValue("id")

	e, ok := h.reg.FindByID(id)
	if !ok {
		return h.message(w, "No se encontró equipo con ID: "+id)
	}

	return h.list(w, "Resultado de Búsqueda por ID: "+id, []*catalog.Equipment{e})
}

// ByName renders the records whose name contains the fragment.
func (h *Handlers) ByName(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	frag := r.PathValue("fragment")

	items := h.reg.FindByName(frag)
	if len(items) == 0 {
		return h.message(w, "No se encontraron equipos con nombre: "+frag)
	}

	return h.list(w, "Resultado de Búsqueda por Nombre: "+frag, items)
}

// Details renders the full description of one record.
func (h *Handlers) Details(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
	id := r.PathValue("id")

	e, ok := h.reg.FindByID(id)
	if !ok {
		return h.message(w, "No se encontró equipo con ID: "+id)
	}

	return h.render(w, pageDetail, e)
}
