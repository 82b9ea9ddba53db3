package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/model/chat"
)

func newTestClient(url string) *Client {
	return NewClient(Options{Endpoint: url, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestSendPostsSenderAndMessage(t *testing.T) {
	var got chat.WebhookRequest
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`[{"recipient_id":"abc","text":"Hi","json_message":{"language":"hi"}}]`))
	}))
	defer srv.Close()

	replies, err := newTestClient(srv.URL).Send(context.Background(), "Hello", "abc")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if got.Sender != "abc" || got.Message != "Hello" {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if contentType != "application/json" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if len(replies) != 1 || replies[0].Text != "Hi" || replies[0].Language != "hi" {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}

func TestSendFailuresBecomeNotice(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"text":"Hi"}`))
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`null`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`<html>oops</html>`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			replies, err := newTestClient(srv.URL).Send(context.Background(), "Hello", "user")
			if err != nil {
				t.Fatalf("Send must not fail, got %v", err)
			}
			if len(replies) != 1 || replies[0].Text != chat.UnavailableNotice {
				t.Fatalf("expected unavailable notice, got %+v", replies)
			}
		})
	}
}

func TestSendUnreachableBecomesNotice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	replies, err := newTestClient(url).Send(context.Background(), "Hello", "user")
	if err != nil {
		t.Fatalf("Send must not fail, got %v", err)
	}
	if len(replies) != 1 || replies[0].Text != chat.UnavailableNotice {
		t.Fatalf("expected unavailable notice, got %+v", replies)
	}
}

func TestDecodeReplies(t *testing.T) {
	replies, err := DecodeReplies([]byte(`[{"text":"Hi"}, null, {"image":"cat.png"}, 5, {"text":"Bye","json_message":{"language":"ta"}}]`))
	if err != nil {
		t.Fatalf("DecodeReplies err: %v", err)
	}

	if len(replies) != 4 {
		t.Fatalf("expected 4 replies, got %d: %+v", len(replies), replies)
	}
	if replies[0].DisplayText() != "Hi" {
		t.Fatalf("unexpected first reply %q", replies[0].DisplayText())
	}
	if replies[1].DisplayText() != `{"image":"cat.png"}` {
		t.Fatalf("expected raw JSON fallback, got %q", replies[1].DisplayText())
	}
	if replies[2].DisplayText() != "5" {
		t.Fatalf("expected scalar raw fallback, got %q", replies[2].DisplayText())
	}
	if replies[3].Language != "ta" {
		t.Fatalf("expected declared language ta, got %q", replies[3].Language)
	}
}

func TestDecodeRepliesKeepsTextDespiteOddSideFields(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		wantText string
		wantLang string
	}{
		{name: "numeric language", payload: `[{"text":"Hi","json_message":{"language":1}}]`, wantText: "Hi"},
		{name: "numeric recipient", payload: `[{"recipient_id":42,"text":"Hi"}]`, wantText: "Hi"},
		{name: "string json_message", payload: `[{"text":"Hi","json_message":"custom"}]`, wantText: "Hi"},
		{name: "null json_message", payload: `[{"text":"Hi","json_message":null}]`, wantText: "Hi"},
		{name: "language beside odd recipient", payload: `[{"recipient_id":[1],"text":"Hi","json_message":{"language":"ml"}}]`, wantText: "Hi", wantLang: "ml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			replies, err := DecodeReplies([]byte(tc.payload))
			if err != nil {
				t.Fatalf("DecodeReplies err: %v", err)
			}
			if len(replies) != 1 {
				t.Fatalf("expected one reply, got %+v", replies)
			}
			if got := replies[0].DisplayText(); got != tc.wantText {
				t.Fatalf("expected display text %q, got %q", tc.wantText, got)
			}
			if replies[0].Language != tc.wantLang {
				t.Fatalf("expected language %q, got %q", tc.wantLang, replies[0].Language)
			}
		})
	}
}

func TestDecodeRepliesNonStringTextFallsBackToRaw(t *testing.T) {
	replies, err := DecodeReplies([]byte(`[{"text":5}]`))
	if err != nil {
		t.Fatalf("DecodeReplies err: %v", err)
	}
	if len(replies) != 1 || replies[0].DisplayText() != `{"text":5}` {
		t.Fatalf("expected raw JSON fallback, got %+v", replies)
	}
}

func TestDecodeRepliesEmptyArray(t *testing.T) {
	replies, err := DecodeReplies([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeReplies err: %v", err)
	}
	if len(replies) != 0 {
		t.Fatalf("expected no replies, got %+v", replies)
	}
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	client := NewClient(Options{}, zerolog.Nop())
	if client.Endpoint() != DefaultEndpoint {
		t.Fatalf("unexpected endpoint %s", client.Endpoint())
	}
}
