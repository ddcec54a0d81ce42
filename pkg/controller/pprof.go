package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux exposes the net/http/pprof handlers on a fresh ServeMux, meant to
// be mounted under the server's debug prefix.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
