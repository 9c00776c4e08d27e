package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"stoikov-maker-go/marketdata"
)

// Serves a recorded CSV feed over websocket for the streaming loader.
//
//	go run ./cmd/mdserve -file data/md.csv -addr :8099
func main() {
	addr := flag.String("addr", ":8099", "listen address")
	file := flag.String("file", "data/md.csv", "feed CSV path")
	paceMs := flag.Int("paceMs", 0, "delay between messages, 0 streams at full speed")
	flag.Parse()

	feed, err := marketdata.LoadCSV(*file, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load feed: %v\n", err)
		os.Exit(1)
	}

	upgrader := websocket.Upgrader{}
	http.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, u := range feed {
			raw, err := json.Marshal(u)
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
			if *paceMs > 0 {
				time.Sleep(time.Duration(*paceMs) * time.Millisecond)
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of feed"))
	})

	fmt.Printf("serving %d updates on ws://%s/feed\n", len(feed), *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
