package stream

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// NewMux returns a handler serving the overlay page at / and the hub's
// websocket at /ws
func NewMux(hub *Hub) *http.ServeMux {

	// static is embedded so the sub directory always exists
	page, _ := fs.Sub(static, "static")

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/", http.FileServer(http.FS(page)))

	return mux
}
