package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/render"
	"github.com/zucenko/showdown/timeline"
)

// FeedServer collects snapshots from producers and pushes them to viewers.
// Everything below the channels is owned by Loop.
type FeedServer struct {
	// Id changes with every process; clients resume only on the same feed.
	Id          uuid.UUID
	Timeline    *timeline.Controller
	Frame       *render.Raster
	FrameWidth  float64
	Subscribers map[uuid.UUID]*Subscriber

	Publishes    chan PublishRequest
	Subscribes   chan SubscribeRequest
	Unsubscribes chan uuid.UUID
	Requests     chan Request
	// closed when Loop returns
	Done chan struct{}

	Upgrader *websocket.Upgrader
	Timeout  time.Duration
	Buffer   int
}

type SubscriberState int

const (
	SS_NEW SubscriberState = iota + 1
	SS_LIVE
	SS_DROPPED
	SS_CLOSED
)

type Subscriber struct {
	State SubscriberState
	Id    uuid.UUID
	Conn  *websocket.Conn

	MessagesToSend chan *model.MapState

	DebugOutMessages int
	DebugLastPing    time.Time
	DebugPings       int
}
