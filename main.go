package main

import (
	"log"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

func main() {
	cfg := LoadConfig()
	game := NewGame(cfg)

	// Raw TCP listener — the desktop client, length-prefixed JSON frames.
	ln, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		log.Fatalf("tcp listen error: %v", err)
	}
	go acceptLoop(ln, game)
	log.Printf("tcp server listening on %s", cfg.TCPAddr)

	// WebSocket listener — the browser client, same JSON as text messages.
	r := mux.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}
		go game.HandleTransport(&wsTransport{ws: ws})
	})
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Printf("websocket server listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

// acceptLoop hands each TCP connection to the game on its own goroutine.
// Capacity rejection happens inside HandleTransport so both listeners share
// one policy.
func acceptLoop(ln net.Listener, game *Game) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("tcp accept error: %v", err)
			return
		}
		log.Printf("new connection from %s", conn.RemoteAddr())
		go game.HandleTransport(&tcpTransport{conn: conn})
	}
}
