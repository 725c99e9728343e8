package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// roundTripper intercepts the Discord REST calls made by a session
type roundTripper struct {
	mu    sync.Mutex
	edits []discordgo.WebhookEdit
}

func (m *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPatch {
		var body discordgo.WebhookEdit
		if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
			m.mu.Lock()
			m.edits = append(m.edits, body)
			m.mu.Unlock()
		}
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
	}, nil
}

func (m *roundTripper) lastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.edits, "no interaction edit was sent")
	return m.edits[len(m.edits)-1]
}

type testContext struct {
	Mux     *http.ServeMux
	Client  *APIClient
	Session *discordgo.Session
	Discord *roundTripper
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewAPIClient(server.URL, "test-api-key")
	client.RetryDelay = time.Millisecond

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	rt := &roundTripper{}
	session.Client = &http.Client{Transport: rt}

	return &testContext{Mux: mux, Client: client, Session: session, Discord: rt}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// registerOK answers the account bootstrap every command performs first
func (tc *testContext) registerOK() {
	tc.Mux.HandleFunc("POST /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user":    map[string]interface{}{"id": "u-1", "username": "Tester"},
			"created": false,
		})
	})
}

func commandInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:  discordgo.InteractionApplicationCommand,
			AppID: "app",
			Token: "token",
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "42", Username: "Tester"},
			},
		},
	}
}

// statusOf returns the HTTP status carried by an API error, or 0
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
