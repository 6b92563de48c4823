package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equishare-storefront/internal/cart"
	"equishare-storefront/internal/store"
)

func TestCartResponseEvents(t *testing.T) {
	srv := newTestServer(t)
	sid := srv.newSession(t)

	rec := srv.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", session: sid, body: AddToCartRequest{ItemID: 1}})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CartResponse](t, rec)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, store.EventItemAdded, resp.Events[0].Kind)
	assert.Equal(t, int64(1), resp.Events[0].ItemID)
	assert.Equal(t, "Professional Power Drill", resp.Events[0].ItemName)
	assert.Equal(t, store.EventCartChanged, resp.Events[1].Kind)

	t.Run("quantity above the limit", func(t *testing.T) {
		rec := srv.do(t, call{method: http.MethodPut, path: "/api/v1/cart/items/1", session: sid, body: QuantityRequest{Quantity: cart.MaxQuantity + 1}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "quantity", decodeBody[ErrorResponse](t, rec).Field)

		rec = srv.do(t, call{method: http.MethodGet, path: "/api/v1/cart", session: sid})
		assert.Equal(t, 1, decodeBody[CartResponse](t, rec).ItemCount)
	})
}

type sseEvent struct {
	name string
	data string
}

// readEvent returns the next named event, skipping comments.
func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestStreamEvents(t *testing.T) {
	srv := newTestServer(t)
	sid := srv.newSession(t)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set(SessionHeader, sid)

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	body := bufio.NewReader(res.Body)
	line, err := body.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	rec := srv.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", session: sid, body: AddToCartRequest{ItemID: 3}})
	require.Equal(t, http.StatusOK, rec.Code)

	ev := readEvent(t, body)
	assert.Equal(t, string(store.EventItemAdded), ev.name)
	var msg EventMessage
	require.NoError(t, json.Unmarshal([]byte(ev.data), &msg))
	assert.Equal(t, int64(3), msg.ItemID)
	assert.Equal(t, 1, msg.ItemCount)
	assert.False(t, msg.At.IsZero())

	assert.Equal(t, string(store.EventCartChanged), readEvent(t, body).name)

	rec = srv.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", session: sid,
		body: CheckoutRequest{Days: 0, Address: "12 MG Road", Phone: "9876543210"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	ev = readEvent(t, body)
	assert.Equal(t, string(store.EventCheckoutRejected), ev.name)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &msg))
	assert.Equal(t, "duration_days", msg.Field)
}

func TestStreamEventsRequiresSession(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, call{method: http.MethodGet, path: "/api/v1/events", session: "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
