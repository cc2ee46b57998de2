package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

// botServer изображает Telegram Bot API: getMe и sendMessage.
func botServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var sent []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Monvix","username":"monvix_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			mu.Lock()
			sent = append(sent, r.FormValue("chat_id")+":"+r.FormValue("text"))
			mu.Unlock()
			w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)

	return srv, &sent
}

func TestNotifierSendsMessage(t *testing.T) {
	srv, sent := botServer(t)

	n, err := newNotifier("123:abc", srv.URL+"/bot%s/%s", srv.Client(), logger.Nop{})
	if err != nil {
		t.Fatalf("newNotifier: %v", err)
	}
	if !n.Enabled() {
		t.Fatal("notifier with token should be enabled")
	}

	if err := n.SendAlert(context.Background(), &usecase.AlertMessage{ChatID: 42, Text: "Price alert"}); err != nil {
		t.Fatalf("SendAlert: %v", err)
	}
	if len(*sent) != 1 || (*sent)[0] != "42:Price alert" {
		t.Fatalf("want one message to chat 42, got %v", *sent)
	}
}

func TestNotifierDisabledWithoutToken(t *testing.T) {
	n, err := newNotifier("", "unused", nil, logger.Nop{})
	if err != nil {
		t.Fatalf("newNotifier: %v", err)
	}
	if n.Enabled() {
		t.Fatal("notifier without token should be disabled")
	}
	if err := n.SendAlert(context.Background(), &usecase.AlertMessage{ChatID: 1, Text: "x"}); err != nil {
		t.Fatalf("disabled SendAlert should be a no-op, got %v", err)
	}
}

func TestNotifierRespectsCancelledContext(t *testing.T) {
	srv, sent := botServer(t)
	n, err := newNotifier("123:abc", srv.URL+"/bot%s/%s", srv.Client(), logger.Nop{})
	if err != nil {
		t.Fatalf("newNotifier: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.SendAlert(ctx, &usecase.AlertMessage{ChatID: 42, Text: "x"}); err == nil {
		t.Fatal("want error for cancelled context")
	}
	if len(*sent) != 0 {
		t.Fatalf("no message expected, got %v", *sent)
	}
}
