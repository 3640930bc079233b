// Package labhttp is a small HTTP/1.x server that speaks directly to TCP sockets. It serves
// exactly one GET request per connection with a fully buffered response and then closes the
// connection.
//
// # Overview
//
// The package is built from four parts:
//
//   - [ReadRequest] parses the request line and drains the header block
//   - [ServeMux] routes the request to an error-returning [Handler]
//   - [Response] frames the buffered result with a status line and two headers
//   - [Server] accepts connections and hands each one to a bounded pool of workers
//
// A minimal example:
//
//	mux := labhttp.NewServeMux()
//	mux.HandleFunc("GET /detalles/{id...}", func(ctx context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
//	    item, ok := reg.FindByID(r.PathValue("id"))
//	    if !ok {
//	        return labhttp.NewError(labhttp.CodeNotFound, errors.New("unknown id"))
//	    }
//	    _, err := w.WriteString(item.Details())
//	    return err
//	}, "details")
//
//	srv := labhttp.NewServer(mux, labhttp.ServerConfig{Addr: ":8080"})
//	err := srv.ListenAndServe()
//
// # Wire format
//
// Every response has the same shape:
//
//	HTTP/1.1 <code> <reason>\r\n
//	Content-Type: <type>; charset=UTF-8\r\n
//	Content-Length: <body length in bytes>\r\n
//	\r\n
//	<body>
//
// No other headers are sent, keep-alive and chunked transfer are not supported. A connection
// whose first line is missing or has fewer than two tokens is closed without writing anything.
//
// # Routing
//
// Patterns are a method and a path. A path is either matched exactly or ends in a single
// {name...} wildcard segment that matches every path under the prefix:
//
//	mux.HandleFunc("GET /equipos", listAll, "list")
//	mux.HandleFunc("GET /buscar/nombre/{fragment...}", byName, "by-name")
//
// Exact matches win over prefixes and the longest prefix wins. The remainder is percent
// decoded with form semantics and available through [Request.PathValue]. A method that no
// route accepts for the path is answered with 405, a path that no route covers with 404.
//
// # Error handling
//
// Handlers write into a buffered [ResponseWriter]. When a handler returns an error or panics
// the buffer is discarded: an [*Error] with [CodeNotFound] or [CodeMethodNotAllowed] gets the
// generic page, any other error gets a 500 page carrying the HTML escaped message.
//
// # Middleware
//
// [ServeMux.Use] registers [Middleware] that wraps every handler registered after it. It must
// be called before the first Handle.
//
// # Named Routes and URL Reversing
//
// Routes can be named for URL generation, avoiding hardcoded paths:
//
//	url, err := mux.Reverse("by-name", "péndulo simple") // "/buscar/nombre/p%C3%A9ndulo+simple"
//
// # Concurrency
//
// [Server.Listen] seals the route table, after that it is read without locking. Each accepted
// connection is served end to end by one worker, the accept loop blocks while all workers are
// busy. [Server.Stop] closes the listener and waits for in-flight connections.
package labhttp
