package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/dixieflatline76/Reel/pkg/api"
	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", api.DefaultAddr, "address of the Reel accent API")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial %s: %v (is accent broadcast enabled in Reel?)", u.String(), err)
	}
	defer conn.Close()
	log.Printf("Connected to %s", u.String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg api.Message
			if err := conn.ReadJSON(&msg); err != nil {
				log.Println("Read error:", err)
				return
			}
			out, _ := json.Marshal(msg)
			log.Printf("Received: %s", out)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Keep the connection alive
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(api.Message{Type: "ping"}); err != nil {
				log.Println("Write error:", err)
				return
			}
		case <-interrupt:
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
