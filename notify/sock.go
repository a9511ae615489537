package notify

import (
	"context"
	"log"
	"net/http"
	"time"

	"verdia/middleware"
	"verdia/mq"
	"verdia/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS authenticates the caller and subscribes the connection to the
// event feed. Browsers cannot set headers on websocket dials, so the
// token may also arrive as a query parameter.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			if tok := r.URL.Query().Get("token"); tok != "" {
				tokenString = "Bearer " + tok
			}
		}
		claims, err := middleware.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("notify upgrade error:", err)
			return
		}

		log.Printf("[notify] user %s subscribed to event feed", claims.UserID)

		client := &Client{Send: make(chan []byte, 16)}
		hub.register <- client

		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	defer conn.Close()
	for data := range c.Send {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only watches for the client going away; the feed is one-way.
func readPump(conn *websocket.Conn, hub *Hub, c *Client) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// RelayEvents forwards the redis event channel into the hub until ctx is
// cancelled.
func RelayEvents(ctx context.Context, hub *Hub) {
	sub := rdx.Conn.Subscribe(ctx, mq.EventChannel)
	defer sub.Close()

	ch := sub.Channel()
	log.Println("[notify] relaying storefront events")

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			hub.Broadcast([]byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}
