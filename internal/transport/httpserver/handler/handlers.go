package handler

import (
	"net/http"

	authhandler "chapter-points-go/internal/transport/httpserver/handler/auth"
	membershandler "chapter-points-go/internal/transport/httpserver/handler/members"
	pointshandler "chapter-points-go/internal/transport/httpserver/handler/points"
)

type Handlers struct {
	Auth    *authhandler.Handlers
	Members *membershandler.Handlers
	Points  *pointshandler.Handlers
}

func New(auth *authhandler.Handlers, members *membershandler.Handlers, points *pointshandler.Handlers) *Handlers {
	return &Handlers{Auth: auth, Members: members, Points: points}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
