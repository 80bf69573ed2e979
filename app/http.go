package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Hubmakerlabs/resolvr/pkg/cache"
	"github.com/Hubmakerlabs/resolvr/pkg/resolver"
	"github.com/rs/cors"
)

// Server is the HTTP boundary: it maps identifier lookups onto the resolver
// and caches successful event and article responses. Profile responses are
// not cached here, the resolver already caches those internally.
type Server struct {
	engine      *resolver.Engine
	responses   *cache.TTL[[]byte]
	responseTTL time.Duration
	serveMux    *http.ServeMux
	httpServer  *http.Server
}

func NewServer(engine *resolver.Engine, responseTTL time.Duration) (s *Server) {
	s = &Server{
		engine:      engine,
		responses:   cache.New[[]byte](),
		responseTTL: responseTTL,
		serveMux:    http.NewServeMux(),
	}
	s.serveMux.HandleFunc("/e/", s.handleEvent)
	s.serveMux.HandleFunc("/p/", s.handleProfile)
	s.serveMux.HandleFunc("/a/", s.handleArticle)
	return
}

// Router exposes the request mux, mainly for tests.
func (s *Server) Router() *http.ServeMux { return s.serveMux }

// Start listens on addr until the server is shut down.
func (s *Server) Start(c context.Context, addr string) (err error) {
	go s.responses.Start(c, 15*time.Minute)
	s.httpServer = &http.Server{
		Handler:      cors.Default().Handler(s.serveMux),
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err = s.httpServer.ListenAndServe(); errors.Is(err,
		http.ErrServerClosed) {

		return nil
	}
	return
}

func (s *Server) Shutdown(c context.Context) {
	chk.E(s.httpServer.Shutdown(c))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if s.serveCached(w, r) {
		return
	}
	id, hints, err := decodeEventID(strings.TrimPrefix(r.URL.Path, "/e/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.engine.ResolveEvent(r.Context(), id, hints)
	s.respond(w, r, res, err, res != nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	pk, hints, err := decodePubkey(strings.TrimPrefix(r.URL.Path, "/p/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.engine.ResolveProfile(r.Context(), pk, hints)
	s.respond(w, r, res, err, false)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	if s.serveCached(w, r) {
		return
	}
	ep, err := decodeCoordinate(strings.TrimPrefix(r.URL.Path, "/a/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.engine.ResolveArticle(r.Context(), ep.PublicKey,
		ep.Identifier, ep.Kind, ep.Relays)
	s.respond(w, r, res, err, res != nil)
}

func (s *Server) serveCached(w http.ResponseWriter, r *http.Request) bool {
	b, ok := s.responses.Get(r.URL.Path)
	if ok {
		writeJSON(w, b)
	}
	return ok
}

// respond maps the resolver outcome onto HTTP: precondition → 400, absent →
// 404, transport failure → 502, anything resolved → 200.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, res any,
	err error, cacheable bool) {

	switch {
	case errors.Is(err, resolver.ErrPrecondition):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, resolver.ErrTransport):
		writeError(w, http.StatusBadGateway, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if isNil(res) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	b, err := json.Marshal(res)
	if chk.E(err) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if cacheable {
		s.responses.Set(r.URL.Path, b, s.responseTTL)
	}
	writeJSON(w, b)
}

func isNil(res any) bool {
	switch v := res.(type) {
	case *resolver.Event:
		return v == nil
	case *resolver.Profile:
		return v == nil
	}
	return res == nil
}

func writeJSON(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write(b)
	chk.T(err)
}

func writeError(w http.ResponseWriter, code int, err error) {
	log.D.F("request failed %d: %v", code, err)
	http.Error(w, err.Error(), code)
}
