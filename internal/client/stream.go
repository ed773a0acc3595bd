package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"genz-ignite/internal/livepoll"
)

var streamPaths = map[string]string{
	livepoll.CollectionPolls: "/api/v1/polls/stream",
}

// Subscribe opens the server-sent event stream for collection. The channel
// closes when ctx is done or the server goes away.
func (c *Client) Subscribe(ctx context.Context, collection string) (<-chan livepoll.Change, error) {
	path, ok := streamPaths[collection]
	if !ok {
		return nil, fmt.Errorf("no stream for collection %q", collection)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	out := make(chan livepoll.Change)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		sc := bufio.NewScanner(resp.Body)
		var event, data string
		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "":
				if data != "" && (event == "" || event == "change") {
					var ch livepoll.Change
					if err := json.Unmarshal([]byte(data), &ch); err != nil {
						c.logger.Warn("skipping malformed change", "err", err)
					} else {
						select {
						case out <- ch:
						case <-ctx.Done():
							return
						}
					}
				}
				event, data = "", ""
			case strings.HasPrefix(line, ":"):
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				chunk := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
				if data != "" {
					data += "\n"
				}
				data += chunk
			}
		}
	}()
	return out, nil
}
