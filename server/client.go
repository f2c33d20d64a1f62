package server

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
)

// FeedClient follows a feed websocket and delivers snapshots in order. On
// reconnect it asks the same feed to resume after what was already delivered;
// a restarted feed (new id) is followed from its start. Servers without a feed
// id resend everything and the delivered prefix is skipped by count.
type FeedClient struct {
	URL     string
	States  chan *model.MapState
	Backoff time.Duration
	Dialer  *websocket.Dialer

	feed string
	seen int
}

func NewFeedClient(url string, buffer int) *FeedClient {
	return &FeedClient{
		URL:     url,
		States:  make(chan *model.MapState, buffer),
		Backoff: time.Second,
		Dialer:  websocket.DefaultDialer,
	}
}

// Loop keeps a session open until ctx is done.
func (f *FeedClient) Loop(ctx context.Context) {
	for {
		err := f.session(ctx)
		if ctx.Err() != nil {
			log.Printf("FeedClient.Loop ended")
			return
		}
		log.Warnf("FeedClient session ended: %v, retry in %v", err, f.Backoff)
		select {
		case <-time.After(f.Backoff):
		case <-ctx.Done():
			return
		}
	}
}

func (f *FeedClient) session(ctx context.Context) error {
	target, err := f.resumeURL()
	if err != nil {
		return err
	}
	con, resp, err := f.Dialer.DialContext(ctx, target, nil)
	if err != nil {
		return err
	}
	defer con.Close()

	skip := 0
	switch feed := resp.Header.Get(FEED_ID_HEADER); {
	case feed == "":
		skip = f.seen
	case feed != f.feed:
		if f.feed != "" {
			log.Warnf("FeedClient feed changed %s -> %s, following from start", f.feed, feed)
		}
		f.feed = feed
		f.seen = 0
	}
	log.Printf("FeedClient connected to %s", target)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			con.Close()
		case <-stop:
		}
	}()

	for i := 0; ; i++ {
		_, r, err := con.NextReader()
		if err != nil {
			return err
		}
		state, err := model.Decode(r)
		if err != nil {
			return err
		}
		if i < skip {
			continue
		}
		select {
		case f.States <- state:
			f.seen++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *FeedClient) resumeURL() (string, error) {
	if f.feed == "" {
		return f.URL, nil
	}
	u, err := url.Parse(f.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("feed", f.feed)
	q.Set("from", strconv.Itoa(f.seen))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
