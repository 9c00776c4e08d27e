package marketdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"stoikov-maker-go/market"
)

// Stream connects to a websocket replay source (see cmd/mdserve) and
// collects JSON-encoded updates until the server closes the stream or the
// context is canceled. The result feeds the same replay simulator as the
// CSV loader; this is still a recorded feed, not a live venue.
func Stream(ctx context.Context, url string) ([]market.MdUpdate, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()

	var updates []market.MdUpdate
	for {
		select {
		case <-ctx.Done():
			return updates, ctx.Err()
		default:
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return updates, nil
			}
			return updates, fmt.Errorf("read feed: %w", err)
		}
		var u market.MdUpdate
		if err := json.Unmarshal(msg, &u); err != nil {
			return updates, fmt.Errorf("decode update: %w", err)
		}
		updates = append(updates, u)
	}
}
