package web

import "github.com/advdv/labhttp"

// Routes registers the catalog routes on mux under their reverse names.
func Routes(mux *labhttp.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /", h.Home, "home")
	mux.HandleFunc("GET /index.html", h.Home, "index")
	mux.HandleFunc("GET /equipos", h.List, "list")
	mux.HandleFunc("GET /ordenar", h.Sort, "sort")
	mux.HandleFunc("GET /styles.css", h.Styles, "styles")
	mux.HandleFunc("GET /buscar/id/{id...}", h.ByID, "by-id")
	mux.HandleFunc("GET /buscar/nombre/{fragment...}", h.ByName, "by-name")
	mux.HandleFunc("GET /detalles/{id...}", h.Details, "details")
	mux.HandleFunc("GET /api/equipos", h.APIList, "api-list")
	mux.HandleFunc("GET /api/buscar/id/{id...}", h.APIByID, "api-by-id")
	mux.HandleFunc("GET /api/buscar/nombre/{fragment...}", h.APIByName, "api-by-name")
	mux.HandleFunc("GET /api/ordenar", h.APISort, "api-sort")
	mux.HandleFunc("GET /api/detalles/{id...}", h.APIDetails, "api-details")
	mux.HandleFunc("GET /api/estadisticas", h.APIStats, "api-stats")
}
