package rpc

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MixinNetwork/btcaddr/bitcoin"
	"github.com/MixinNetwork/btcaddr/config"
	"github.com/MixinNetwork/btcaddr/crypto"
	"github.com/MixinNetwork/btcaddr/logger"
	"github.com/dimfeld/httptreemux"
	"github.com/gorilla/handlers"
	"github.com/unrolled/render"
)

type R struct {
	Network bitcoin.Network
	NewKey  func() (*crypto.KeyPair, error)
}

func NewRouter(network bitcoin.Network) *httptreemux.TreeMux {
	return newRouter(&R{Network: network, NewKey: crypto.NewKeyPair})
}

func newRouter(impl *R) *httptreemux.TreeMux {
	router := httptreemux.New()
	router.POST("/generate", impl.generate)
	router.GET("/info", impl.info)
	registerHanders(router)
	return router
}

func registerHanders(router *httptreemux.TreeMux) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv interface{}) {
		logger.Errorf("PANIC %s %v\n%s", r.URL.Path, rcv, debug.Stack())
		err := fmt.Errorf("internal server error %v", rcv)
		render.New().JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}
}

func (impl *R) info(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	render.New().JSON(w, http.StatusOK, map[string]interface{}{
		"version": config.BuildVersion,
		"network": impl.Network.String(),
	})
}

func handleCORS(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS,GET,POST")
		w.Header().Set("Access-Control-Max-Age", "600")
		if r.Method == "OPTIONS" {
			render.New().JSON(w, http.StatusOK, map[string]interface{}{})
		} else {
			handler.ServeHTTP(w, r)
		}
	})
}

func NewHandler(network bitcoin.Network) http.Handler {
	handler := handleCORS(NewRouter(network))
	return handlers.ProxyHeaders(handler)
}

func StartHTTP(custom *config.Custom) error {
	network, err := bitcoin.ParseNetwork(custom.Service.Network)
	if err != nil {
		return err
	}
	server := &http.Server{Addr: custom.Listen(), Handler: NewHandler(network)}
	logger.Printf("StartHTTP(%s) on %s\n", network, custom.Listen())
	return server.ListenAndServe()
}
