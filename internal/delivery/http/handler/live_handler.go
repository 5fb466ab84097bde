package handler

import (
	"context"
	"net/http"
	"time"

	"patient-record-manager/internal/converter"
	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/service"
	"patient-record-manager/pkg/response"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const liveWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler streams snapshots of a live query over a WebSocket.
type LiveHandler struct {
	liveService *service.LiveQueryService
	log         *logrus.Logger
}

func NewLiveHandler(liveService *service.LiveQueryService, log *logrus.Logger) *LiveHandler {
	return &LiveHandler{liveService: liveService, log: log}
}

// Subscribe upgrades GET /live?query=... and pushes one JSON message per snapshot.
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := h.liveService.Subscribe(ctx, r.URL.Query().Get("query"))
	if err != nil {
		cancel()
		switch err {
		case service.ErrEmptyLiveQuery, service.ErrLiveQueryReadOnly:
			response.BadRequest(w, err.Error())
		default:
			response.Error(w, http.StatusServiceUnavailable, err.Error(), nil)
		}
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		h.log.Warnf("Failed to upgrade live query connection: %+v", err)
		return
	}

	go h.readPump(ws, cancel)
	h.writePump(ws, sub, cancel)
}

// readPump discards client messages and cancels the subscription on disconnect.
func (h *LiveHandler) readPump(ws *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveHandler) writePump(ws *websocket.Conn, sub *service.Subscription, cancel context.CancelFunc) {
	defer func() {
		cancel()
		sub.Close()
		ws.Close()
	}()

	for snap := range sub.Updates() {
		msg := dto.LiveSnapshotResponse{
			SubscriptionID: sub.ID.String(),
			At:             snap.At,
		}
		if snap.Err != nil {
			msg.Error = snap.Err.Error()
		} else {
			msg.Result = converter.QueryResultToResponse(snap.Result)
		}

		ws.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := ws.WriteJSON(msg); err != nil {
			h.log.Debugf("Live query %s client gone: %v", sub.ID, err)
			return
		}
	}

	ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
}
