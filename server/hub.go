package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"rothermal/metrics"
	"rothermal/model"
)

// Hub serves one websocket connection: requests are read into msg, answered
// by handleRequest and written back by handleResponse.
type Hub struct {
	store  *Store
	conn   *websocket.Conn
	logger *log.Entry

	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(store *Store, logger *log.Entry) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
		msg:    make(chan model.Msg, 10),
		reply:  make(chan model.Msg, 10),
		done:   make(chan struct{}),
	}
}

// Catalog listing sent for a "list" request.
type Listing struct {
	Assemblies []string `json:"assemblies"`
	Parts      []string `json:"parts"`
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				h.logger.WithError(err).Warn("write reply")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			metrics.Requests.WithLabelValues(msg.Type).Inc()
			select {
			case h.reply <- h.answer(msg):
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

// answer builds the reply of one request.
func (h *Hub) answer(msg model.Msg) model.Msg {
	if msg.Type == model.MsgRebuild {
		cat, err := h.store.Rebuild()
		if err != nil {
			h.logger.WithError(err).Error("rebuild failed")
			return errorMsg(err)
		}
		return model.Msg{Type: model.MsgRebuild, Content: cat.RunID, RunID: cat.RunID}
	}

	cat, err := h.store.Catalog()
	if err != nil {
		return errorMsg(err)
	}
	var v interface{}
	switch msg.Type {
	case model.MsgList:
		v = Listing{Assemblies: cat.AssemblyNames(), Parts: cat.PartNames()}
	case model.MsgAssembly:
		asm, ok := cat.Assemblies[msg.Content]
		if !ok {
			return errorMsg(fmt.Errorf("assembly %q not found", msg.Content))
		}
		v = asm
	case model.MsgPart:
		part, ok := cat.Parts[msg.Content]
		if !ok {
			return errorMsg(fmt.Errorf("part %q not found", msg.Content))
		}
		v = part
	default:
		h.logger.WithField("type", msg.Type).Warn("no such type")
		return errorMsg(fmt.Errorf("unknown message type %q", msg.Type))
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errorMsg(err)
	}
	return model.Msg{Type: msg.Type, Content: string(data), RunID: cat.RunID}
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: model.MsgError, Content: err.Error()}
}
