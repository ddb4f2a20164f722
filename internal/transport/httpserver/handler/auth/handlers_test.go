package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authdomain "chapter-points-go/internal/domain/auth"
	memberdomain "chapter-points-go/internal/domain/member"
	"chapter-points-go/pkg/logger"
)

type stubAuthRepo struct {
	consumedToken string
}

func (r *stubAuthRepo) CreateMember(ctx context.Context, m *memberdomain.Member) error {
	return nil
}

func (r *stubAuthRepo) FindMemberByEmail(ctx context.Context, email string) (*memberdomain.Member, error) {
	return nil, memberdomain.ErrMemberNotFound
}

func (r *stubAuthRepo) FindMemberByID(ctx context.Context, memberID int64) (*memberdomain.Member, error) {
	return nil, memberdomain.ErrMemberNotFound
}

func (r *stubAuthRepo) SetPassword(ctx context.Context, memberID int64, passwordHash string) error {
	return nil
}

func (r *stubAuthRepo) CreateResetToken(ctx context.Context, token *authdomain.PasswordResetToken) error {
	return nil
}

func (r *stubAuthRepo) ConsumeResetToken(ctx context.Context, token string, now time.Time) (int64, error) {
	r.consumedToken = token
	return 7, nil
}

func newResetHandlers(repo authdomain.Repository) *Handlers {
	svc := authdomain.NewService(repo, authdomain.Config{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
	})
	return New(svc, nil, logger.New(io.Discard, slog.LevelError, "json"))
}

func postResetPassword(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)
	return rec
}

// The reset form posts email alongside token and new_password; the handler
// must accept the full payload even though only the token matters.
func TestResetPasswordAcceptsFullFormPayload(t *testing.T) {
	repo := &stubAuthRepo{}
	h := newResetHandlers(repo)

	token := uuid.NewString()
	rec := postResetPassword(t, h, fmt.Sprintf(
		`{"email":"gil@example.com","token":%q,"new_password":"a fresh password"}`, token,
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, token, repo.consumedToken)
}

func TestResetPasswordMalformedTokenRejected(t *testing.T) {
	repo := &stubAuthRepo{}
	h := newResetHandlers(repo)

	rec := postResetPassword(t, h,
		`{"email":"gil@example.com","token":"not-a-uuid","new_password":"a fresh password"}`,
	)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Empty(t, repo.consumedToken, "a malformed token must never reach storage")
	assert.Contains(t, rec.Body.String(), "reset token")
}
