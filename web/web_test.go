package web_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/loader"
	"github.com/advdv/labhttp/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
)

func setup(t *testing.T) (*labhttp.ServeMux, *catalog.Registry) {
	t.Helper()

	reg := catalog.NewRegistry()
	_, _, err := loader.Populate(context.Background(), loader.Builtin(), reg)
	require.NoError(t, err)

	mux := labhttp.NewServeMuxWith(-1, labhttp.NewTestLogger(t), labhttp.NewReverser())
	h, err := web.NewHandlers(reg, mux)
	require.NoError(t, err)
	web.Routes(mux, h)

	return mux, reg
}

func get(mux *labhttp.ServeMux, path string) labhttp.Response {
	return mux.Respond(context.Background(), &labhttp.Request{Method: "GET", Target: path, Path: path})
}

// cards returns the data-id attribute of every element with class equipo-card, in order.
func cards(t *testing.T, body []byte) []string {
	t.Helper()

	doc, err := html.Parse(bytes.NewReader(body))
	require.NoError(t, err)

	var ids []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "class") == "equipo-card" {
			ids = append(ids, attr(n, "data-id"))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return ids
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func TestHome(t *testing.T) {
	mux, _ := setup(t)

	for _, path := range []string{"/", "/index.html"} {
		resp := get(mux, path)
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Equal(t, labhttp.ContentTypeHTML, resp.ContentType)

		body := string(resp.Body)
		assert.Contains(t, body, "Sistema de Laboratorio de Física")
		assert.Contains(t, body, `<span id="total">10</span>`)
		assert.Contains(t, body, `<span id="consumo-total">734.50</span>`)
		assert.Contains(t, body, `<span id="consumo-promedio">73.45</span>`)
		assert.Contains(t, body, `href="/equipos"`)
		assert.Contains(t, body, `href="/ordenar"`)
		assert.Contains(t, body, `data-prefix="/buscar/id/"`)
		assert.Contains(t, body, `data-prefix="/buscar/nombre/"`)
		assert.Contains(t, body, "encodeURIComponent")
	}
}

func TestListKeepsRegistryOrder(t *testing.T) {
	mux, _ := setup(t)

	resp := get(mux, "/equipos")
	require.Equal(t, labhttp.CodeOK, resp.Code)
	require.Contains(t, string(resp.Body), "Listado Completo de Equipos")
	require.Contains(t, string(resp.Body), `Se encontraron <span id="cantidad">10</span> equipo(s)`)
	require.Equal(t, []string{
		"PEN001", "PEN002", "FPU001", "FPU002", "OSC001",
		"OSC002", "GEN001", "GEN002", "SIM001", "SIM002",
	}, cards(t, resp.Body))
}

func TestSortPersistsForLaterListings(t *testing.T) {
	mux, _ := setup(t)
	sorted := []string{
		"FPU001", "FPU002", "PEN001", "PEN002", "GEN001",
		"OSC002", "OSC001", "GEN002", "SIM001", "SIM002",
	}

	resp := get(mux, "/ordenar")
	require.Equal(t, labhttp.CodeOK, resp.Code)
	require.Contains(t, string(resp.Body), "Equipos Ordenados por Consumo Eléctrico")
	require.Equal(t, sorted, cards(t, resp.Body))

	require.Equal(t, sorted, cards(t, get(mux, "/equipos").Body))
}

func TestSearchByID(t *testing.T) {
	mux, _ := setup(t)

	t.Run("found ignoring case", func(t *testing.T) {
		resp := get(mux, "/buscar/id/osc001")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Equal(t, []string{"OSC001"}, cards(t, resp.Body))
		require.Contains(t, string(resp.Body), "Resultado de Búsqueda por ID: osc001")
		require.Contains(t, string(resp.Body), "⚡ 85.00W")
		require.Contains(t, string(resp.Body), `href="/detalles/OSC001"`)
	})

	t.Run("missing is a 200 page", func(t *testing.T) {
		resp := get(mux, "/buscar/id/ZZZ999")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Empty(t, cards(t, resp.Body))
		require.Contains(t, string(resp.Body), "No se encontró equipo con ID: ZZZ999")
	})

	t.Run("empty id", func(t *testing.T) {
		resp := get(mux, "/buscar/id/")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Contains(t, string(resp.Body), "No se encontró equipo con ID: ")
	})
}

func TestSearchByName(t *testing.T) {
	mux, _ := setup(t)

	t.Run("decoded fragment", func(t *testing.T) {
		resp := get(mux, "/buscar/nombre/P%C3%A9ndulo")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Equal(t, []string{"PEN001", "PEN002"}, cards(t, resp.Body))
		require.Contains(t, string(resp.Body), "Resultado de Búsqueda por Nombre: Péndulo")
	})

	t.Run("plus and percent twenty both decode to a space", func(t *testing.T) {
		for _, path := range []string{"/buscar/nombre/de+Funciones", "/buscar/nombre/de%20Funciones"} {
			require.Equal(t, []string{"GEN001"}, cards(t, get(mux, path).Body), path)
		}
	})

	t.Run("no match", func(t *testing.T) {
		resp := get(mux, "/buscar/nombre/laser")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.Contains(t, string(resp.Body), "No se encontraron equipos con nombre: laser")
	})

	t.Run("fragment is escaped", func(t *testing.T) {
		resp := get(mux, "/buscar/nombre/%3Cscript%3E")
		require.Equal(t, labhttp.CodeOK, resp.Code)
		require.NotContains(t, string(resp.Body), "<script>alert")
		require.Contains(t, string(resp.Body), "&lt;script&gt;")
	})
}

func TestDetails(t *testing.T) {
	mux, reg := setup(t)

	resp := get(mux, "/detalles/GEN002")
	require.Equal(t, labhttp.CodeOK, resp.Code)

	e, ok := reg.FindByID("GEN002")
	require.True(t, ok)

	body := string(resp.Body)
	require.Contains(t, body, "<h2>Generador RF de Precisión</h2>")
	require.Contains(t, body, "=== DETALLES DEL GENERADOR DE SEÑALES ===")
	require.Contains(t, body, html.EscapeString(strings.Split(e.Details(), "\n")[1]))

	missing := get(mux, "/detalles/NOPE")
	require.Equal(t, labhttp.CodeOK, missing.Code)
	require.Contains(t, string(missing.Body), "No se encontró equipo con ID: NOPE")
}

func TestStyles(t *testing.T) {
	mux, _ := setup(t)

	resp := get(mux, "/styles.css")
	require.Equal(t, labhttp.CodeOK, resp.Code)
	require.Equal(t, labhttp.ContentTypeCSS, resp.ContentType)
	require.Contains(t, string(resp.Body), ".equipo-card")
}

func TestAPI(t *testing.T) {
	mux, _ := setup(t)

	t.Run("list", func(t *testing.T) {
		resp := get(mux, "/api/equipos")
		require.Equal(t, labhttp.ContentTypeJSON, resp.ContentType)

		doc := gjson.ParseBytes(resp.Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Equipos del catálogo (10 elemento(s))", doc.Get("message").String())
		require.Equal(t, int64(10), doc.Get("data.#").Int())
		require.Equal(t, "PEN001", doc.Get("data.0.id").String())
		require.Equal(t, "Péndulo con Encoder", doc.Get("data.0.tipo").String())
		require.InDelta(t, 25.5, doc.Get("data.0.consumoElectrico").Float(), 1e-9)
		require.Contains(t, doc.Get("data.0.detalles").String(), "ID: PEN001")
	})

	t.Run("stats", func(t *testing.T) {
		doc := gjson.ParseBytes(get(mux, "/api/estadisticas").Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Estadísticas del catálogo", doc.Get("message").String())
		require.Equal(t, int64(10), doc.Get("data.totalEquipos").Int())
		require.InDelta(t, 734.5, doc.Get("data.consumoTotal").Float(), 1e-9)
		require.InDelta(t, 73.45, doc.Get("data.consumoPromedio").Float(), 1e-9)
	})

	t.Run("by id", func(t *testing.T) {
		doc := gjson.ParseBytes(get(mux, "/api/buscar/id/pen001").Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Equipo encontrado", doc.Get("message").String())
		require.Equal(t, "PEN001", doc.Get("data.id").String())
		require.Equal(t, "Péndulo Simple Digital", doc.Get("data.nombre").String())
	})

	t.Run("by id failures", func(t *testing.T) {
		for path, msg := range map[string]string{
			"/api/buscar/id/":       "ID no puede estar vacío",
			"/api/buscar/id/+":      "ID no puede estar vacío",
			"/api/buscar/id/ZZZ999": "No se encontró equipo con ID: ZZZ999",
		} {
			resp := get(mux, path)
			require.Equal(t, labhttp.CodeOK, resp.Code, path)

			doc := gjson.ParseBytes(resp.Body)
			require.False(t, doc.Get("success").Bool(), path)
			require.Equal(t, msg, doc.Get("message").String(), path)
			require.Equal(t, gjson.Null, doc.Get("data").Type, path)
		}
	})

	t.Run("by name", func(t *testing.T) {
		doc := gjson.ParseBytes(get(mux, "/api/buscar/nombre/P%C3%A9ndulo").Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Se encontraron equipos (2 elemento(s))", doc.Get("message").String())
		require.Equal(t, []any{"PEN001", "PEN002"}, doc.Get("data.#.id").Value())

		doc = gjson.ParseBytes(get(mux, "/api/buscar/nombre/laser").Body)
		require.False(t, doc.Get("success").Bool())
		require.Equal(t, "No se encontraron equipos con nombre: laser", doc.Get("message").String())
		require.Equal(t, gjson.Null, doc.Get("data").Type)

		doc = gjson.ParseBytes(get(mux, "/api/buscar/nombre/").Body)
		require.False(t, doc.Get("success").Bool())
		require.Equal(t, "Nombre no puede estar vacío", doc.Get("message").String())
	})

	t.Run("details", func(t *testing.T) {
		doc := gjson.ParseBytes(get(mux, "/api/detalles/OSC001").Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Detalles del equipo", doc.Get("message").String())
		require.True(t, strings.HasPrefix(doc.Get("data.detalles").String(), "=== DETALLES DEL OSCILOSCOPIO ===\n"))
		require.Equal(t, "OSC001", doc.Get("data.equipo.id").String())
		require.InDelta(t, 85, doc.Get("data.equipo.consumoElectrico").Float(), 1e-9)

		doc = gjson.ParseBytes(get(mux, "/api/detalles/NOPE").Body)
		require.False(t, doc.Get("success").Bool())
		require.Equal(t, "No se encontró equipo con ID: NOPE", doc.Get("message").String())
	})

	t.Run("sort persists", func(t *testing.T) {
		mux, reg := setup(t)

		doc := gjson.ParseBytes(get(mux, "/api/ordenar").Body)
		require.True(t, doc.Get("success").Bool())
		require.Equal(t, "Equipos ordenados por consumo eléctrico (10 elemento(s))", doc.Get("message").String())
		require.Equal(t, "FPU001", doc.Get("data.0.id").String())
		require.Equal(t, "SIM002", doc.Get("data.9.id").String())

		require.Equal(t, "FPU001", reg.All()[0].ID)
		require.Equal(t, "FPU001", gjson.GetBytes(get(mux, "/api/equipos").Body, "data.0.id").String())
	})

	t.Run("empty catalog", func(t *testing.T) {
		mux := labhttp.NewServeMuxWith(-1, labhttp.NewTestLogger(t), labhttp.NewReverser())
		h, err := web.NewHandlers(catalog.NewRegistry(), mux)
		require.NoError(t, err)
		web.Routes(mux, h)

		doc := gjson.ParseBytes(get(mux, "/api/equipos").Body)
		require.False(t, doc.Get("success").Bool())
		require.Equal(t, "No se encontraron elementos", doc.Get("message").String())
		require.Equal(t, gjson.Null, doc.Get("data").Type)
	})
}

func TestUnknownPathsAndMethods(t *testing.T) {
	mux, _ := setup(t)

	require.Equal(t, labhttp.CodeNotFound, get(mux, "/nope").Code)
	require.Equal(t, labhttp.CodeMethodNotAllowed,
		mux.Respond(context.Background(), &labhttp.Request{Method: "POST", Path: "/equipos"}).Code)
}
