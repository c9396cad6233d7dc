package voice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/mockinterview-lambda/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverCommand struct {
	Type      string                 `json:"type"`
	Assistant *voice.AssistantConfig `json:"assistant"`
	Muted     *bool                  `json:"muted"`
}

// newVoiceServer starts a fake provider that plays script after the start command and
// reports every command it receives on the returned channel.
func newVoiceServer(t *testing.T, script []voice.Event) (*httptest.Server, <-chan serverCommand) {
	t.Helper()

	commands := make(chan serverCommand, 16)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var cmd serverCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				return
			}
			commands <- cmd

			switch cmd.Type {
			case "start":
				for _, ev := range script {
					payload, _ := json.Marshal(ev)
					if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				}
			case "end-call":
				payload, _ := json.Marshal(voice.Event{Type: voice.EventCallEnd})
				_ = ws.WriteMessage(websocket.TextMessage, payload)
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return srv, commands
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebsocketDialer(t *testing.T) {
	t.Run("NotConfigured", func(t *testing.T) {
		d := voice.NewWebsocketDialer("", "", time.Second)
		_, err := d.Dial(context.Background(), voice.AssistantConfig{})
		assert.ErrorIs(t, err, voice.ErrNotConfigured)
	})

	t.Run("Rejected", func(t *testing.T) {
		srv, _ := newVoiceServer(t, nil)
		d := voice.NewWebsocketDialer(wsURL(srv), "wrong", time.Second)
		_, err := d.Dial(context.Background(), voice.AssistantConfig{})
		assert.Error(t, err)
	})

	t.Run("FullCall", func(t *testing.T) {
		script := []voice.Event{
			{Type: voice.EventCallStart},
			{Type: voice.EventSpeechStart},
			userTranscript("Channels synchronize goroutines", "final", ptr(0.9)),
			{Type: voice.EventSpeechEnd},
		}
		srv, commands := newVoiceServer(t, script)

		client := voice.NewClient(voice.NewWebsocketDialer(wsURL(srv), "test-key", time.Second))
		call, err := client.Start(context.Background(), voice.AssistantConfig{Name: "Interview Assistant"})
		require.NoError(t, err)

		start := <-commands
		assert.Equal(t, "start", start.Type)
		require.NotNil(t, start.Assistant)
		assert.Equal(t, "Interview Assistant", start.Assistant.Name)

		fragment := <-call.Transcripts()
		assert.Equal(t, "Channels synchronize goroutines", fragment)

		muted, err := call.ToggleMute()
		require.NoError(t, err)
		assert.True(t, muted)

		mute := <-commands
		assert.Equal(t, "set-muted", mute.Type)
		require.NotNil(t, mute.Muted)
		assert.True(t, *mute.Muted)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, call.Stop(ctx))

		hangup := <-commands
		assert.Equal(t, "end-call", hangup.Type)

		res, err := call.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Channels synchronize goroutines", res.Transcript)
		assert.Equal(t, voice.StateEnded, call.State())
	})
}
