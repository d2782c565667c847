// Package sockets is the outbound delivery gateway: displays and messages
// produced by the engine are broadcast to everyone watching a channel room.
// The engine itself never touches this; controllers hand results over.
package sockets

import (
	"encoding/json"
	"net/http"
	"os"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

type Gateway struct {
	server *socketio.Server
}

func CreateSocketIOServer() (*Gateway, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-channel", func(s socketio.Conn, channelId string) {
		if channelId == "" {
			s.Emit("error-message", "channel id required")
			return
		}
		s.Join(channelId)
		s.Emit("joined-channel", channelId)
	})

	server.OnEvent("/", "leave-channel", func(s socketio.Conn, channelId string) {
		s.Leave(channelId)
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		s.LeaveAll()
	})

	return &Gateway{server: server}, nil
}

// Broadcast relays a payload to everyone in the channel room. Failures are
// logged, never surfaced: delivery is cosmetic, the HTTP response already
// carries the result.
func (g *Gateway) Broadcast(channelId, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("marshaling broadcast payload")
		return
	}
	g.server.BroadcastToRoom("/", channelId, event, string(data))
}

// Serve blocks on the socket.io HTTP listener.
func (g *Gateway) Serve() error {
	go g.server.Serve()
	defer g.server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("SOCKET_ORIGIN")},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", g.server)

	addr := os.Getenv("SOCKET_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	return http.ListenAndServe(addr, c.Handler(mux))
}
