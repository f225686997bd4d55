package notify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-tasks/internal/logger"
)

type fakeBotAPI struct {
	server *httptest.Server
	sent   []map[string]string
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	f := &fakeBotAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Tasks","username":"tasks_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			f.sent = append(f.sent, map[string]string{
				"chat_id":    r.PostForm.Get("chat_id"),
				"text":       r.PostForm.Get("text"),
				"parse_mode": r.PostForm.Get("parse_mode"),
			})
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":10,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func TestTelegramNotify(t *testing.T) {
	api := newFakeBotAPI(t)

	tg, err := NewTelegramWithEndpoint("123:abc", api.server.URL+"/bot%s/%s", 42, logger.Discard())
	require.NoError(t, err)

	require.NoError(t, tg.Notify(context.Background(), "<b>Daily report</b>"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "42", api.sent[0]["chat_id"])
	assert.Equal(t, "<b>Daily report</b>", api.sent[0]["text"])
	assert.Equal(t, "HTML", api.sent[0]["parse_mode"])
}

func TestTelegramNotifyHonoursCancelledContext(t *testing.T) {
	api := newFakeBotAPI(t)
	tg, err := NewTelegramWithEndpoint("123:abc", api.server.URL+"/bot%s/%s", 42, logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, tg.Notify(ctx, "hello"))
	assert.Empty(t, api.sent)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(log.New(&buf))

	require.NoError(t, n.Notify(context.Background(), "3 tasks due"))
	assert.Contains(t, buf.String(), "3 tasks due")
}
