package members

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	memberdomain "chapter-points-go/internal/domain/member"
	"chapter-points-go/internal/transport/httpserver/middleware"
	"chapter-points-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handlers struct {
	Members *memberdomain.Service
	log     logger.Logger
}

func New(members *memberdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Members: members, log: log}
}

func (h *Handlers) ListUnapproved(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.ListUnapproved(r.Context())
	if err != nil {
		h.log.InternalError("members: list unapproved failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load pending accounts")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handlers) ListApproved(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.ListApproved(r.Context())
	if err != nil {
		h.log.InternalError("members: list approved failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load members")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.Leaderboard(r.Context())
	if err != nil {
		h.log.InternalError("members: leaderboard failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type accountActionRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (h *Handlers) ApproveAccount(w http.ResponseWriter, r *http.Request) {
	var req accountActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "member id is required")
		return
	}

	approved, err := h.Members.ApproveAccount(r.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, memberdomain.ErrAlreadyApproved):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.log.InternalError("members: approve account failed", err)
			writeError(w, http.StatusInternalServerError, "failed to approve account")
		}
		return
	}

	writeJSON(w, http.StatusOK, approved)
}

func (h *Handlers) DenyAccount(w http.ResponseWriter, r *http.Request) {
	var req accountActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "member id is required")
		return
	}

	if err := h.Members.DenyAccount(r.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, memberdomain.ErrNotUnapproved):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.log.InternalError("members: deny account failed", err)
			writeError(w, http.StatusInternalServerError, "failed to deny account")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration denied."})
}

type updateMemberRequest struct {
	Position string `json:"position" validate:"required"`
	Points   int64  `json:"points" validate:"gte=0"`
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	memberID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "position and non-negative points are required")
		return
	}

	updated, err := h.Members.UpdateMember(r.Context(), memberdomain.UpdateMemberInput{
		MemberID: memberID,
		ActorID:  claims.MemberID,
		Role:     req.Position,
		Points:   req.Points,
	})
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, memberdomain.ErrInvalidRole),
			errors.Is(err, memberdomain.ErrNegativePoints):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, memberdomain.ErrCannotDemoteSelf):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			h.log.InternalError("members: update failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "failed to update member")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.Members.DeleteMember(r.Context(), memberID); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.InternalError("members: delete failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Member deleted."})
}

func idParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
