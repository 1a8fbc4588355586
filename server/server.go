package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"rothermal/metrics"
	"rothermal/model"
)

type Server struct {
	addr        string
	metricsPath string
	upgrader    websocket.Upgrader
	store       *Store
	logger      *log.Entry
}

func NewServer(addr, metricsPath string, upgrader websocket.Upgrader, store *Store, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Server{
		addr:        addr,
		metricsPath: metricsPath,
		upgrader:    upgrader,
		store:       store,
		logger:      logger,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	metrics.Clients.Inc()
	defer metrics.Clients.Dec()

	hub := NewHub(s.store, s.logger.WithField("remote", r.RemoteAddr))
	hub.conn = conn
	defer close(hub.done)
	go hub.handleRequest()
	go hub.handleResponse()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				hub.logger.WithError(err).Warn("read request")
			}
			return
		}
		hub.msg <- msg
	}
}

// Handler routes /ws and the metrics path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	if s.metricsPath != "" {
		mux.Handle(s.metricsPath, metrics.Handler())
	}
	return mux
}

func (s *Server) Serve() error {
	s.logger.WithFields(log.Fields{"addr": s.addr, "metrics": s.metricsPath}).Info("server listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
