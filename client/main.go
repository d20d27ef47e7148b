// Command client is a terminal test client: it joins the lobby and turns
// stdin commands into game requests while printing every event received.
//
//	start                 begin round one
//	place <rank> <suit>   e.g. "place A hearts"
//	retry                 re-deal a failed round
//	continue              advance past a cleared round
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/warithr621/game-theory/deck"
	"github.com/warithr621/game-theory/network"
)

var (
	addr = flag.String("addr", "localhost:8080", "server address")
	name = flag.String("name", "player", "player name")
)

// send frames and sends one message to the server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- %s: %s", network.TypeName(msgID), string(data))
		}
	}()

	joinData, _ := json.Marshal(map[string]string{"name": *name})
	if err := send(c, network.MsgTypeJoinLobby, joinData); err != nil {
		log.Fatalf("Join failed: %v", err)
	}
	log.Printf("Joined as %q. Commands: start | place <rank> <suit> | retry | continue", *name)

	lines := make(chan string)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			text, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimSpace(text)
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case text, ok := <-lines:
			if !ok {
				return
			}
			if err := handleCommand(c, text); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}

func handleCommand(c *websocket.Conn, text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "start":
		return send(c, network.MsgTypeStartGame, []byte{})
	case "retry":
		return send(c, network.MsgTypeRetryRound, []byte{})
	case "continue":
		return send(c, network.MsgTypeContinueGame, []byte{})
	case "place":
		if len(fields) != 3 {
			log.Println("Usage: place <rank> <suit>")
			return nil
		}
		card := deck.Card{Rank: deck.Rank(fields[1]), Suit: deck.Suit(fields[2])}
		if !deck.Valid(card) {
			log.Printf("Unknown card: %s of %s", fields[1], fields[2])
			return nil
		}
		data, _ := json.Marshal(card)
		return send(c, network.MsgTypePlaceCard, data)
	default:
		log.Printf("Unknown command %q", fields[0])
		return nil
	}
}
