// Package web renders the catalog: HTML pages from embedded templates, the stylesheet and a
// small JSON API. Handlers never write error pages themselves; a lookup without results is a
// regular 200 page and anything else bubbles up to the server as an error.
package web
