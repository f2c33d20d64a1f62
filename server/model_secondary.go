package server

import (
	"fmt"

	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/timeline"
)

const HTTP_SUCCESS = 200
const HTTP_CREATED = 201
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

// FEED_ID_HEADER carries FeedServer.Id on the websocket upgrade response.
const FEED_ID_HEADER = "X-Feed-Id"

type ResponseCode int

const (
	FEED_OK ResponseCode = iota
	FEED_CREATED
	FEED_NOT_FOUND
	FEED_INVALID
	FEED_ERROR
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case FEED_OK:
		return HTTP_SUCCESS
	case FEED_CREATED:
		return HTTP_CREATED
	case FEED_NOT_FOUND:
		return HTTP_NOT_FOUND
	case FEED_INVALID:
		return HTTP_BAD_REQUEST
	case FEED_ERROR:
		return HTTP_SERVER_ERR
	default:
		panic(h)
	}
}

func (ss SubscriberState) Name() string {
	switch ss {
	case SS_NEW:
		return "NEW"
	case SS_LIVE:
		return "LIVE"
	case SS_DROPPED:
		return "DROPPED"
	case SS_CLOSED:
		return "CLOSED"
	default:
		return fmt.Sprintf("N/A(%d)", ss)
	}
}

type RequestKind int

const (
	REQ_COUNT RequestKind = iota
	REQ_STATE
	REQ_FRAME
	REQ_VIEW
	REQ_PLAY
	REQ_PREV
	REQ_NEXT
)

// ControlAction maps the /controls/:action path segment.
func ControlAction(action string) (RequestKind, bool) {
	switch action {
	case "play":
		return REQ_PLAY, true
	case "prev":
		return REQ_PREV, true
	case "next":
		return REQ_NEXT, true
	}
	return 0, false
}

type Request struct {
	Kind   RequestKind
	Index  int
	Format string
	Reply  chan Reply
}

type Reply struct {
	Code        ResponseCode
	Count       int
	Subscribers int
	State       *model.MapState
	View        timeline.PanelView
	Data        []byte
	ContentType string
	Err         error
}

type PublishRequest struct {
	State *model.MapState
	Reply chan Reply
}

type SubscribeRequest struct {
	Subscriber *Subscriber
	// first history index to send
	From int
	// history from From at the moment of registration
	Reply chan []*model.MapState
}

type countResponse struct {
	Count       int `json:"count"`
	Subscribers int `json:"subscribers"`
}

type publishResponse struct {
	Index int `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}
