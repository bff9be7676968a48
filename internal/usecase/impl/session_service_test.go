package impl

import (
	"context"
	"testing"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	mockRepo "identity/internal/mocks/repository"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectTx makes txManager run fn against factory and return its error.
func expectTx(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestSessionService_ListActiveSessions_Success(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	srv := NewSessionService(txManager, newDiscardLogger())

	ctx := context.Background()
	now := time.Now()
	srv.(*sessionService).now = func() time.Time { return now }

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	tokens := []*entity.RefreshToken{
		{ID: uuid.New(), UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}

	expectTx(txManager, mockFactory)
	mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
	mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
	mockUserRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	mockRefreshRepo.EXPECT().FindActiveRefreshTokensByUserID(ctx, user.ID, now).Return(tokens, nil)

	sessions, err := srv.ListActiveSessions(ctx, "alice")

	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, tokens[0].ID, sessions[0].ID)
	assert.Equal(t, tokens[0].ExpiresAt, sessions[0].ExpiresAt)
}

func TestSessionService_ListActiveSessions_UnknownUser(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	srv := NewSessionService(txManager, newDiscardLogger())

	expectTx(txManager, mockFactory)
	mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
	mockUserRepo.EXPECT().FindByUsername(mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := srv.ListActiveSessions(context.Background(), "ghost")

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSessionService_RevokeSession(t *testing.T) {
	userID := uuid.New()
	owned := uuid.New()

	tests := []struct {
		name      string
		sessionID uuid.UUID
		revoke    bool
		wantErr   error
	}{
		{name: "owned session", sessionID: owned, revoke: true},
		{name: "foreign session", sessionID: uuid.New(), wantErr: domainerrors.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager := mockRepo.NewMockTransactionManager(t)
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
			srv := NewSessionService(txManager, newDiscardLogger())
			ctx := context.Background()

			expectTx(txManager, mockFactory)
			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
			mockUserRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: userID, Username: "alice"}, nil)
			mockRefreshRepo.EXPECT().
				FindActiveRefreshTokensByUserID(ctx, userID, mock.AnythingOfType("time.Time")).
				Return([]*entity.RefreshToken{{ID: owned, UserID: userID}}, nil)
			if tt.revoke {
				mockRefreshRepo.EXPECT().RevokeRefreshToken(ctx, owned).Return(true, nil)
			}

			err := srv.RevokeSession(ctx, "alice", tt.sessionID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSessionService_CleanupExpiredSessions(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	mockFactory := mockRepo.NewMockRepositoryFactory(t)
	mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	srv := NewSessionService(txManager, newDiscardLogger())

	now := time.Now()
	srv.(*sessionService).now = func() time.Time { return now }

	expectTx(txManager, mockFactory)
	mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
	mockRefreshRepo.EXPECT().DeleteExpiredRefreshTokens(mock.Anything, now).Return(3, nil)

	deleted, err := srv.CleanupExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestSessionService_CleanupExpiredSessions_StoreError(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	srv := NewSessionService(txManager, newDiscardLogger())

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(errors.New("connection reset"))

	deleted, err := srv.CleanupExpiredSessions(context.Background())

	require.Error(t, err)
	assert.Zero(t, deleted)
}

// Sessions end up revoked in the store and the refresh token stops working.
func TestSessionService_RevokeSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	env.register(t, "bob")
	pair := env.login(t, "alice")
	env.login(t, "alice")

	sessions, err := env.sessions.ListActiveSessions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.ErrorIs(t, env.sessions.RevokeSession(ctx, "bob", sessions[0].ID), domainerrors.ErrSessionNotFound)

	for _, s := range sessions {
		require.NoError(t, env.sessions.RevokeSession(ctx, "alice", s.ID))
	}

	_, err = env.auth.Refresh(ctx, usecase.RefreshInput{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenRevoked)

	sessions, err = env.sessions.ListActiveSessions(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionService_CleanupExpiredSessions_EndToEnd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	env.login(t, "alice")

	deleted, err := env.sessions.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	env.clock.Advance(env.cfg.JWT.RefreshTTL)

	deleted, err = env.sessions.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
