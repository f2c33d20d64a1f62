package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/showdown/model"
)

func receive(t *testing.T, f *FeedClient) *model.MapState {
	select {
	case s := <-f.States:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}

func TestFeedClientFollowsServer(t *testing.T) {
	fs, ts := newTestServer(t)
	_, err := fs.Publish(context.Background(), &model.MapState{Width: 2, Height: 2})
	require.NoError(t, err)

	f := NewFeedClient("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/map", 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Loop(ctx)

	assert.Equal(t, 2, receive(t, f).Width)

	_, err = fs.Publish(context.Background(), &model.MapState{Width: 3, Height: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, receive(t, f).Width)
}

func TestFeedClientSkipsReplayedHistoryWithoutFeedId(t *testing.T) {
	var sessions int32
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		con, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer con.Close()
		// every session resends the history and adds one more snapshot
		n := int(atomic.AddInt32(&sessions, 1)) + 1
		for i := 1; i <= n; i++ {
			if err := con.WriteJSON(&model.MapState{Width: i, Height: 1}); err != nil {
				return
			}
		}
		con.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}))
	defer ts.Close()

	f := NewFeedClient("ws"+strings.TrimPrefix(ts.URL, "http"), 8)
	f.Backoff = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Loop(ctx)

	for want := 1; want <= 4; want++ {
		assert.Equal(t, want, receive(t, f).Width)
	}
}

func TestFeedClientFollowsRestartedServer(t *testing.T) {
	var mu sync.Mutex
	var current *FeedServer
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fs := current
		mu.Unlock()
		fs.HandleSubscribe()(w, r)
	}))
	defer ts.Close()

	start := func() (*FeedServer, context.CancelFunc) {
		fs := NewFeedServer(90, time.Second, 8)
		ctx, cancel := context.WithCancel(context.Background())
		go fs.Loop(ctx)
		mu.Lock()
		current = fs
		mu.Unlock()
		return fs, cancel
	}
	publish := func(fs *FeedServer, widths ...int) {
		for _, w := range widths {
			_, err := fs.Publish(context.Background(), &model.MapState{Width: w, Height: 1})
			require.NoError(t, err)
		}
	}

	first, stopFirst := start()
	publish(first, 1, 2, 3)

	f := NewFeedClient("ws"+strings.TrimPrefix(ts.URL, "http"), 8)
	f.Backoff = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Loop(ctx)
	for want := 1; want <= 3; want++ {
		assert.Equal(t, want, receive(t, f).Width)
	}

	second, stopSecond := start()
	defer func() {
		stopSecond()
		<-second.Done
	}()
	stopFirst()
	<-first.Done

	// a fresh history, shorter than what was already delivered
	publish(second, 7, 8)
	assert.Equal(t, 7, receive(t, f).Width)
	assert.Equal(t, 8, receive(t, f).Width)
}

func TestFeedClientStopsOnCancel(t *testing.T) {
	f := NewFeedClient("ws://127.0.0.1:1/none", 1)
	f.Backoff = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Loop(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}
