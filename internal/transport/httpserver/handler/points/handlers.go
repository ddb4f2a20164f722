package points

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	pointsdomain "chapter-points-go/internal/domain/points"
	"chapter-points-go/internal/transport/httpserver/middleware"
	"chapter-points-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handlers struct {
	Points *pointsdomain.Service
	log    logger.Logger
}

func New(points *pointsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Points: points, log: log}
}

type createRequestBody struct {
	RecipientUserID int64  `json:"recipientUserId" validate:"required,gt=0"`
	Points          int64  `json:"points" validate:"required,gt=0"`
	Reason          string `json:"reason" validate:"required"`
}

func (h *Handlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	var body createRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "recipient, positive points and a reason are required")
		return
	}

	created, err := h.Points.CreateRequest(r.Context(), pointsdomain.CreateRequestInput{
		GiverID:     claims.MemberID,
		RecipientID: body.RecipientUserID,
		Points:      body.Points,
		Reason:      body.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, pointsdomain.ErrPartyNotEligible):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, pointsdomain.ErrInvalidPoints),
			errors.Is(err, pointsdomain.ErrReasonRequired),
			errors.Is(err, pointsdomain.ErrRecipientRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("points: create request failed", err)
			writeError(w, http.StatusInternalServerError, "failed to submit point request")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	requests, err := h.Points.ListByStatus(r.Context(), status)
	if err != nil {
		if errors.Is(err, pointsdomain.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.InternalError("points: list requests failed", err, "status", status)
		writeError(w, http.StatusInternalServerError, "failed to load point requests")
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// ApproveRequest credits the recipient and reports the updated balance. A 409
// means the request was already reviewed, possibly by a racing admin; that is
// an expected outcome, not a failure.
func (h *Handlers) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	requestID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	balance, err := h.Points.Approve(r.Context(), requestID, claims.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, pointsdomain.ErrRequestNotPending),
			errors.Is(err, pointsdomain.ErrAlreadyApproved):
			writeError(w, http.StatusConflict, "request already reviewed")
		case errors.Is(err, pointsdomain.ErrInvalidRequestID):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, pointsdomain.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.log.InternalError("points: approve failed", err, "request_id", requestID)
			writeError(w, http.StatusInternalServerError, "failed to approve request")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"points": balance})
}

type denyRequestBody struct {
	DenyReason string `json:"denyReason"`
}

func (h *Handlers) DenyRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	requestID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var body denyRequestBody
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	denied, err := h.Points.Deny(r.Context(), requestID, claims.MemberID, body.DenyReason)
	if err != nil {
		switch {
		case errors.Is(err, pointsdomain.ErrRequestNotPending):
			writeError(w, http.StatusConflict, "request already reviewed")
		case errors.Is(err, pointsdomain.ErrInvalidRequestID):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.InternalError("points: deny failed", err, "request_id", requestID)
			writeError(w, http.StatusInternalServerError, "failed to deny request")
		}
		return
	}

	writeJSON(w, http.StatusOK, denied)
}

func (h *Handlers) MyPointHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	requests, err := h.Points.HistoryForRecipient(r.Context(), claims.MemberID)
	if err != nil {
		h.log.InternalError("points: recipient history failed", err, "member_id", claims.MemberID)
		writeError(w, http.StatusInternalServerError, "failed to load point history")
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (h *Handlers) MyPointsGiven(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	requests, err := h.Points.HistoryForGiver(r.Context(), claims.MemberID)
	if err != nil {
		h.log.InternalError("points: giver history failed", err, "member_id", claims.MemberID)
		writeError(w, http.StatusInternalServerError, "failed to load points given")
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func idParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
