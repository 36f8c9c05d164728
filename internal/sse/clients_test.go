package sse

import (
	"sync"
	"testing"

	"github.com/sidenotehq/sidenote/internal/model"
)

func TestBroadcastFiltersByAnnotation(t *testing.T) {
	clients := NewSSEClients()

	watching := &Client{Msg: make(chan string, 1), AnnotationID: "ann-1"}
	elsewhere := &Client{Msg: make(chan string, 1), AnnotationID: "ann-2"}
	clients.Add(watching)
	clients.Add(elsewhere)

	clients.Broadcast("ann-1", "hello")

	select {
	case msg := <-watching.Msg:
		if msg != "hello" {
			t.Errorf("watching client got %q, want %q", msg, "hello")
		}
	default:
		t.Error("watching client got no message")
	}

	select {
	case msg := <-elsewhere.Msg:
		t.Errorf("client for another annotation got %q", msg)
	default:
	}
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	clients := NewSSEClients()

	full := &Client{Msg: make(chan string, 1), AnnotationID: "ann-1"}
	full.Msg <- "stale"
	clients.Add(full)

	// Must not block.
	clients.Broadcast("ann-1", "fresh")

	if msg := <-full.Msg; msg != "stale" {
		t.Errorf("queued message = %q, want %q", msg, "stale")
	}
}

func TestDeleteClosesChannel(t *testing.T) {
	clients := NewSSEClients()

	client := &Client{Msg: make(chan string), AnnotationID: "ann-1"}
	clients.Add(client)
	clients.Delete(client)

	if _, open := <-client.Msg; open {
		t.Error("channel still open after Delete")
	}

	// A deleted client must not receive broadcasts.
	clients.Broadcast("ann-1", "after delete")
}

func TestConcurrentAddBroadcastDelete(t *testing.T) {
	clients := NewSSEClients()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client := &Client{Msg: make(chan string, 4), AnnotationID: "ann-1"}
			clients.Add(client)
			clients.Delete(client)
		}()
		go func() {
			defer wg.Done()
			clients.Broadcast(model.AnnotationID("ann-1"), "tick")
		}()
	}
	wg.Wait()
}
