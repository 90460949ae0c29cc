package sightdebug

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tutumagi/perception/logger"
	"go.uber.org/zap"
)

// NewRouter 调试接口
//	GET /sight/queries
//	GET /sight/queries/{observer}
//	GET /sight/stats
//	GET /sight/legend
//	GET /metrics
func NewRouter(store *Store) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/sight/queries", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, store.Last())
	}).Methods("GET")
	r.HandleFunc("/sight/queries/{observer}", func(w http.ResponseWriter, req *http.Request) {
		observer, err := strconv.ParseUint(mux.Vars(req)["observer"], 10, 32)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, store.QueriesOf(uint32(observer)))
	}).Methods("GET")
	r.HandleFunc("/sight/stats", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, store.Last().Stats)
	}).Methods("GET")
	r.HandleFunc("/sight/legend", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(Legend()))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("sight debug: encode failed", zap.Error(err))
	}
}

// Server 调试 http 服务
type Server struct {
	server *http.Server
}

// NewServer ctor
func NewServer(addr string, store *Store) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(store),
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start 在新的 goroutine 中监听
func (s *Server) Start() {
	go func() {
		logger.Info("sight debug server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("sight debug server stopped", zap.Error(err))
		}
	}()
}

// Stop 等待正在处理的请求结束
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Warn("sight debug server shutdown", zap.Error(err))
	}
}
