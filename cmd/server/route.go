package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/ws/map"
const URI_STATES = "/states"
const URI_STATE = "/states/:idx"
const URI_FRAME = "/frame"
const URI_CONTROLS = "/controls"
const URI_CONTROL = "/controls/:action"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.FeedServer.HandleSubscribe())
	s.router.HandleFunc("POST", URI_STATES, s.FeedServer.HandlePublish())
	s.router.HandleFunc("GET", URI_STATES, s.FeedServer.HandleStates())
	s.router.HandleFunc("GET", URI_STATE, s.FeedServer.HandleState())
	s.router.HandleFunc("GET", URI_FRAME, s.FeedServer.HandleFrame())
	s.router.HandleFunc("GET", URI_CONTROLS, s.FeedServer.HandleControls())
	s.router.HandleFunc("POST", URI_CONTROL, s.FeedServer.HandleControl())
}
