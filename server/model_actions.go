package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/render"
	"github.com/zucenko/showdown/timeline"
)

const maxStateBytes = 8 << 20

func NewFeedServer(frameWidth int, timeout time.Duration, buffer int) *FeedServer {
	frame := render.NewRaster(float64(frameWidth), float64(frameWidth))
	return &FeedServer{
		Timeline: timeline.NewController(render.NewRenderer(),
			timeline.WithSurface(frame),
			timeline.WithLogger(log.WithField("component", "feed"))),
		Id:           uuid.New(),
		Frame:        frame,
		FrameWidth:   float64(frameWidth),
		Subscribers:  make(map[uuid.UUID]*Subscriber),
		Publishes:    make(chan PublishRequest),
		Subscribes:   make(chan SubscribeRequest),
		Unsubscribes: make(chan uuid.UUID),
		Requests:     make(chan Request),
		Done:         make(chan struct{}),
		Upgrader:     &websocket.Upgrader{},
		Timeout:      timeout,
		Buffer:       buffer,
	}
}

func (s *FeedServer) Loop(ctx context.Context) {
	log.Printf("FeedServer.Loop starting")
	defer close(s.Done)
	for {
		select {
		case <-ctx.Done():
			for id, sub := range s.Subscribers {
				s.drop(id, sub, SS_CLOSED)
			}
			log.Printf("FeedServer.Loop ended")
			return
		case pr := <-s.Publishes:
			pr.Reply <- s.publish(pr.State)
		case sr := <-s.Subscribes:
			sub := sr.Subscriber
			sub.State = SS_LIVE
			s.Subscribers[sub.Id] = sub
			from := sr.From
			if from < 0 || from > s.Timeline.Len() {
				from = 0
			}
			history := make([]*model.MapState, 0, s.Timeline.Len()-from)
			for i := from; i < s.Timeline.Len(); i++ {
				state, _ := s.Timeline.Snapshot(i)
				history = append(history, state)
			}
			log.WithField("subscriber", sub.Id).Infof("FeedServer.Loop subscribed, history %d", len(history))
			sr.Reply <- history
		case id := <-s.Unsubscribes:
			if sub, ok := s.Subscribers[id]; ok {
				s.drop(id, sub, SS_CLOSED)
			}
		case req := <-s.Requests:
			req.Reply <- s.handle(req)
		}
	}
}

func (s *FeedServer) publish(state *model.MapState) Reply {
	err := s.Timeline.AddState(state, nil)
	if errors.Is(err, model.ErrInvalidState) {
		log.Warnf("FeedServer rejected state: %v", err)
		return Reply{Code: FEED_INVALID, Err: err}
	}
	if err != nil {
		log.Errorf("FeedServer render failed: %v", err)
	}
	for id, sub := range s.Subscribers {
		select {
		case sub.MessagesToSend <- state:
		default:
			log.WithField("subscriber", id).Warn("MessagesToSend FULL, dropping subscriber")
			s.drop(id, sub, SS_DROPPED)
		}
	}
	return Reply{Code: FEED_CREATED, Count: s.Timeline.Len()}
}

func (s *FeedServer) drop(id uuid.UUID, sub *Subscriber, state SubscriberState) {
	sub.State = state
	close(sub.MessagesToSend)
	delete(s.Subscribers, id)
	log.WithField("subscriber", id).Infof("subscriber %s", state.Name())
}

func (s *FeedServer) handle(req Request) Reply {
	switch req.Kind {
	case REQ_COUNT:
		return Reply{Code: FEED_OK, Count: s.Timeline.Len(), Subscribers: len(s.Subscribers)}
	case REQ_STATE:
		state, ok := s.Timeline.Snapshot(req.Index)
		if !ok {
			return Reply{Code: FEED_NOT_FOUND}
		}
		return Reply{Code: FEED_OK, State: state}
	case REQ_VIEW:
		return Reply{Code: FEED_OK, View: s.Timeline.View()}
	case REQ_PLAY, REQ_PREV, REQ_NEXT:
		var err error
		switch req.Kind {
		case REQ_PLAY:
			err = s.Timeline.TogglePlay()
		case REQ_PREV:
			err = s.Timeline.StepPrevious()
		case REQ_NEXT:
			err = s.Timeline.StepNext()
		}
		if err != nil {
			return Reply{Code: FEED_ERROR, Err: err}
		}
		return Reply{Code: FEED_OK, View: s.Timeline.View()}
	case REQ_FRAME:
		return s.frame(req.Format)
	default:
		return Reply{Code: FEED_INVALID}
	}
}

func (s *FeedServer) frame(format string) Reply {
	state, ok := s.Timeline.Current()
	if !ok {
		return Reply{Code: FEED_NOT_FOUND}
	}
	var buf bytes.Buffer
	switch format {
	case "svg":
		svg := render.NewSVG(s.FrameWidth, 0)
		if err := render.NewRenderer().Render(state, svg); err != nil {
			return Reply{Code: FEED_ERROR, Err: err}
		}
		if _, err := svg.WriteTo(&buf); err != nil {
			return Reply{Code: FEED_ERROR, Err: err}
		}
		return Reply{Code: FEED_OK, Data: buf.Bytes(), ContentType: "image/svg+xml"}
	case "", "png":
		if err := s.Frame.EncodePNG(&buf); err != nil {
			return Reply{Code: FEED_ERROR, Err: err}
		}
		return Reply{Code: FEED_OK, Data: buf.Bytes(), ContentType: "image/png"}
	default:
		return Reply{Code: FEED_INVALID}
	}
}

// Publish hands a snapshot to Loop and waits for it to be stored. ctx only
// bounds the handover: once Loop holds the request the reply is awaited, so a
// ctx error always means the snapshot was not stored.
func (s *FeedServer) Publish(ctx context.Context, state *model.MapState) (Reply, error) {
	pr := PublishRequest{State: state, Reply: make(chan Reply, 1)}
	select {
	case s.Publishes <- pr:
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
	rep := <-pr.Reply
	return rep, rep.Err
}

func (s *FeedServer) ask(req Request) (Reply, bool) {
	req.Reply = make(chan Reply, 1)
	select {
	case s.Requests <- req:
	case <-time.After(s.Timeout):
		log.Warn("Requests TIMEOUTED")
		return Reply{}, false
	}
	select {
	case rep := <-req.Reply:
		return rep, true
	case <-time.After(s.Timeout):
		log.Warn("Reply TIMEOUTED")
		return Reply{}, false
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON %v", err)
	}
}

func writeReplyError(w http.ResponseWriter, rep Reply) {
	msg := http.StatusText(rep.Code.ToHttp())
	if rep.Err != nil {
		msg = rep.Err.Error()
	}
	writeJSON(w, rep.Code.ToHttp(), errorResponse{Error: msg})
}

// HandlePublish answers 408 only when the snapshot never reached Loop, so a
// producer may retry it without creating a duplicate.
func (s *FeedServer) HandlePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := model.Decode(http.MaxBytesReader(w, r.Body, maxStateBytes))
		if err != nil {
			writeJSON(w, HTTP_BAD_REQUEST, errorResponse{Error: err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.Timeout)
		defer cancel()
		rep, err := s.Publish(ctx, state)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			log.Warn("HandlePublish TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		if rep.Code != FEED_CREATED {
			writeReplyError(w, rep)
			return
		}
		writeJSON(w, HTTP_CREATED, publishResponse{Index: rep.Count - 1})
	}
}

func (s *FeedServer) HandleStates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, ok := s.ask(Request{Kind: REQ_COUNT})
		if !ok {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		writeJSON(w, HTTP_SUCCESS, countResponse{Count: rep.Count, Subscribers: rep.Subscribers})
	}
}

func (s *FeedServer) HandleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := strconv.Atoi(way.Param(r.Context(), "idx"))
		if err != nil {
			writeJSON(w, HTTP_BAD_REQUEST, errorResponse{Error: "index must be a number"})
			return
		}
		rep, ok := s.ask(Request{Kind: REQ_STATE, Index: idx})
		if !ok {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		if rep.Code != FEED_OK {
			writeReplyError(w, rep)
			return
		}
		writeJSON(w, HTTP_SUCCESS, rep.State)
	}
}

func (s *FeedServer) HandleFrame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, ok := s.ask(Request{Kind: REQ_FRAME, Format: r.URL.Query().Get("format")})
		if !ok {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		if rep.Code != FEED_OK {
			writeReplyError(w, rep)
			return
		}
		w.Header().Set("Content-Type", rep.ContentType)
		w.WriteHeader(HTTP_SUCCESS)
		if _, err := w.Write(rep.Data); err != nil {
			log.Warnf("HandleFrame write %v", err)
		}
	}
}

func (s *FeedServer) HandleControls() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, ok := s.ask(Request{Kind: REQ_VIEW})
		if !ok {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		writeJSON(w, HTTP_SUCCESS, rep.View)
	}
}

func (s *FeedServer) HandleControl() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := ControlAction(way.Param(r.Context(), "action"))
		if !ok {
			writeJSON(w, HTTP_NOT_FOUND, errorResponse{Error: "unknown control"})
			return
		}
		rep, ok := s.ask(Request{Kind: kind})
		if !ok {
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		if rep.Code != FEED_OK {
			writeReplyError(w, rep)
			return
		}
		writeJSON(w, HTTP_SUCCESS, rep.View)
	}
}

func (s *FeedServer) HandleSubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleSubscribe - connection received")
		// resume point, honoured only when the client saw this same feed
		q := r.URL.Query()
		from := 0
		if q.Get("feed") == s.Id.String() {
			from, _ = strconv.Atoi(q.Get("from"))
		}
		header := http.Header{}
		header.Set(FEED_ID_HEADER, s.Id.String())
		con, err := s.Upgrader.Upgrade(w, r, header)
		if err != nil {
			log.Printf("HandleSubscribe websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		sub := &Subscriber{
			State:          SS_NEW,
			Id:             uuid.New(),
			Conn:           con,
			MessagesToSend: make(chan *model.MapState, s.Buffer),
		}
		con.SetPingHandler(
			func(message string) error {
				err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
				sub.DebugLastPing = time.Now()
				sub.DebugPings++
				if err == websocket.ErrCloseSent {
					return nil
				} else if e, ok := err.(net.Error); ok && e.Temporary() {
					return nil
				}
				return err
			})

		history := make(chan []*model.MapState, 1)
		select {
		case s.Subscribes <- SubscribeRequest{Subscriber: sub, From: from, Reply: history}:
		case <-time.After(s.Timeout):
			log.Warn("HandleSubscribe Subscribes TIMEOUTED")
			con.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "feed busy"),
				time.Now().Add(time.Second))
			return
		}

		closed := make(chan struct{})
		go sub.LoopChannelRead(s, closed)
		sub.LoopChannelWrite(<-history, closed)
	}
}

// LoopChannelRead only watches the connection; viewers do not send data.
func (sub *Subscriber) LoopChannelRead(s *FeedServer, closed chan struct{}) {
	for {
		if _, _, err := sub.Conn.NextReader(); err != nil {
			log.WithField("subscriber", sub.Id).Printf("LoopChannelRead ended: %v", err)
			break
		}
	}
	close(closed)
	select {
	case s.Unsubscribes <- sub.Id:
	case <-s.Done:
	}
}

// LoopChannelWrite sends the history, then every new snapshot until the
// subscriber is dropped or the connection goes away.
func (sub *Subscriber) LoopChannelWrite(history []*model.MapState, closed chan struct{}) {
	for _, state := range history {
		if err := sub.write(state); err != nil {
			return
		}
	}
	for {
		select {
		case state, ok := <-sub.MessagesToSend:
			if !ok {
				sub.Conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return
			}
			if err := sub.write(state); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (sub *Subscriber) write(state *model.MapState) error {
	w, err := sub.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		log.Warnf("Subscriber.write cant get writer %v", err)
		return err
	}
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Warnf("Subscriber.write cant encode %v", err)
		return err
	}
	if err := w.Close(); err != nil {
		log.Warnf("Subscriber.write cant flush %v", err)
		return err
	}
	sub.DebugOutMessages++
	return nil
}
