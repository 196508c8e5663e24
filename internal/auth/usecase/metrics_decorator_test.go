package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/tableside/tableside/internal/auth/domain"
)

type ctxKey string

// recordingBusinessMetrics captures the contexts and labels passed to it.
type recordingBusinessMetrics struct {
	operationCtxs []context.Context
	operations    []string
	statuses      []string
	durationCtxs  []context.Context
}

func (r *recordingBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	r.operationCtxs = append(r.operationCtxs, ctx)
	r.operations = append(r.operations, domain+"."+operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	r.durationCtxs = append(r.durationCtxs, ctx)
}

func TestUseCaseWithMetrics_AuthenticateRecordsWithCallerContext(t *testing.T) {
	tokenService := &mockTokenService{}
	tokenService.On("Verify", "good-token").Return(&authDomain.Principal{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "admin@example.com",
		Role:  authDomain.RoleAdmin,
	}, nil)

	inner := NewAuthUseCase(nil, nil, nil, tokenService)
	recorder := &recordingBusinessMetrics{}
	uc := NewUseCaseWithMetrics(inner, recorder)

	ctx := context.WithValue(context.Background(), ctxKey("request-id"), "req-42")
	principal, err := uc.Authenticate(ctx, "good-token")
	require.NoError(t, err)
	require.NotNil(t, principal)

	require.Len(t, recorder.operationCtxs, 1)
	assert.Equal(t, "req-42", recorder.operationCtxs[0].Value(ctxKey("request-id")))
	assert.Equal(t, "auth.authenticate", recorder.operations[0])
	assert.Equal(t, "success", recorder.statuses[0])

	require.Len(t, recorder.durationCtxs, 1)
	assert.Equal(t, "req-42", recorder.durationCtxs[0].Value(ctxKey("request-id")))
}

func TestUseCaseWithMetrics_AuthenticateRecordsErrorStatus(t *testing.T) {
	tokenService := &mockTokenService{}
	tokenService.On("Verify", "bad-token").Return(nil, authDomain.ErrTokenMalformed)

	inner := NewAuthUseCase(nil, nil, nil, tokenService)
	recorder := &recordingBusinessMetrics{}
	uc := NewUseCaseWithMetrics(inner, recorder)

	principal, err := uc.Authenticate(context.Background(), "bad-token")
	require.Error(t, err)
	assert.Nil(t, principal)

	require.Len(t, recorder.statuses, 1)
	assert.Equal(t, "error", recorder.statuses[0])
}
