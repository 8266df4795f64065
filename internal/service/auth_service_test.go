package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-media-api/internal/metrics"
	"go-media-api/internal/model"
)

type fakeUserStore struct {
	usersByEmail map[string]model.User
	usersByID    map[string]model.User
	created      []model.User
	passwords    map[string]string
	err          error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{
		usersByEmail: map[string]model.User{},
		usersByID:    map[string]model.User{},
		passwords:    map[string]string{},
	}
	for _, u := range users {
		s.usersByEmail[u.Email] = u
		s.usersByID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	if s.err != nil {
		return model.User{}, s.err
	}
	u, ok := s.usersByEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	if s.err != nil {
		return model.User{}, s.err
	}
	u, ok := s.usersByID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.usersByEmail[email]
	return ok, nil
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) error {
	if s.err != nil {
		return s.err
	}
	s.usersByEmail[u.Email] = u
	s.usersByID[u.ID] = u
	s.created = append(s.created, u)
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.usersByID[userID]; !ok {
		return model.ErrUserNotFound
	}
	s.passwords[userID] = passwordHash
	return nil
}

type auditCall struct {
	userID  *string
	email   string
	action  string
	status  string
	details map[string]string
}

type fakeAuditRecorder struct {
	calls    []auditCall
	failWith error
}

func (f *fakeAuditRecorder) Record(_ context.Context, userID *string, email string, action string, status string, details map[string]string) error {
	f.calls = append(f.calls, auditCall{userID: userID, email: email, action: action, status: status, details: details})
	return f.failWith
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(t *testing.T, users *fakeUserStore, audit *fakeAuditRecorder) *AuthService {
	t.Helper()
	svc, err := NewAuthService(users, audit, metrics.New(prometheus.NewRegistry()), "test-secret", 15*time.Minute)
	require.NoError(t, err)
	return svc
}

func testUser(t *testing.T, email string, password string) model.User {
	t.Helper()
	return model.User{
		ID:           "1b671a64-40d5-491e-99b0-da01ff1f3341",
		Email:        email,
		PasswordHash: hashPassword(t, password),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	reqCtx := model.RequestContext{ClientIP: "10.0.0.9", UserAgent: "test-agent"}

	t.Run("success issues token and one success audit record", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)

		token, got, err := svc.Authenticate(context.Background(), "a@x.com", "secret", reqCtx)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.PasswordHash)

		require.Len(t, audit.calls, 1)
		call := audit.calls[0]
		assert.Equal(t, model.ActionLogin, call.action)
		assert.Equal(t, model.StatusSuccess, call.status)
		require.NotNil(t, call.userID)
		assert.Equal(t, user.ID, *call.userID)
		assert.Equal(t, "a@x.com", call.email)
		assert.Equal(t, "10.0.0.9", call.details[model.DetailClientIP])
		assert.Equal(t, "test-agent", call.details[model.DetailUserAgent])
	})

	t.Run("wrong password fails with failure audit record", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)

		_, _, err := svc.Authenticate(context.Background(), "a@x.com", "wrong", reqCtx)

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Len(t, audit.calls, 1)
		call := audit.calls[0]
		assert.Equal(t, model.StatusFailure, call.status)
		assert.Equal(t, "invalid password", call.details[model.DetailReason])
		require.NotNil(t, call.userID)
		assert.Equal(t, user.ID, *call.userID)
	})

	t.Run("unknown email fails with nil user id in audit record", func(t *testing.T) {
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(), audit)

		_, _, err := svc.Authenticate(context.Background(), "ghost@x.com", "anything", reqCtx)

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Len(t, audit.calls, 1)
		call := audit.calls[0]
		assert.Equal(t, model.StatusFailure, call.status)
		assert.Equal(t, "user not found", call.details[model.DetailReason])
		assert.Nil(t, call.userID)
		assert.Equal(t, "ghost@x.com", call.email)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		svc := newTestAuthService(t, newFakeUserStore(user), &fakeAuditRecorder{})

		_, _, unknownErr := svc.Authenticate(context.Background(), "ghost@x.com", "anything", reqCtx)
		_, _, wrongErr := svc.Authenticate(context.Background(), "a@x.com", "wrong", reqCtx)

		assert.Equal(t, unknownErr, wrongErr)
	})

	t.Run("every attempt writes exactly one audit record", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)

		for i := 0; i < 3; i++ {
			_, _, _ = svc.Authenticate(context.Background(), "a@x.com", "secret", reqCtx)
			_, _, _ = svc.Authenticate(context.Background(), "a@x.com", "wrong", reqCtx)
			_, _, _ = svc.Authenticate(context.Background(), "ghost@x.com", "x", reqCtx)
		}

		assert.Len(t, audit.calls, 9)
	})

	t.Run("audit write failure does not block a valid login", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		audit := &fakeAuditRecorder{failWith: errors.New("audit store down")}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)

		token, _, err := svc.Authenticate(context.Background(), "a@x.com", "secret", reqCtx)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Len(t, audit.calls, 1)
	})

	t.Run("empty input is rejected without an audit record", func(t *testing.T) {
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(), audit)

		_, _, err := svc.Authenticate(context.Background(), "", "secret", reqCtx)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, _, err = svc.Authenticate(context.Background(), "a@x.com", "", reqCtx)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		assert.Empty(t, audit.calls)
	})

	t.Run("credential store outage surfaces as store unavailable", func(t *testing.T) {
		store := newFakeUserStore()
		store.err = errors.New("connection refused")
		svc := newTestAuthService(t, store, &fakeAuditRecorder{})

		_, _, err := svc.Authenticate(context.Background(), "a@x.com", "secret", reqCtx)
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})

	t.Run("token signing failure still writes one failure record", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)
		svc.sign = func(string) (string, error) { return "", errors.New("signer broken") }

		_, _, err := svc.Authenticate(context.Background(), "a@x.com", "secret", reqCtx)

		require.Error(t, err)
		require.Len(t, audit.calls, 1)
		call := audit.calls[0]
		assert.Equal(t, model.StatusFailure, call.status)
		assert.Equal(t, &user.ID, call.userID)
		assert.Equal(t, "token signing failed", call.details[model.DetailReason])
	})
}

func TestAuthService_Verify(t *testing.T) {
	t.Run("issued token verifies until expiry", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		svc := newTestAuthService(t, newFakeUserStore(user), &fakeAuditRecorder{})

		issued := time.Now().UTC()
		svc.now = func() time.Time { return issued }

		token, _, err := svc.Authenticate(context.Background(), "a@x.com", "secret", model.RequestContext{})
		require.NoError(t, err)

		// Just before expiry.
		svc.now = func() time.Time { return issued.Add(15*time.Minute - time.Second) }
		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.NotEmpty(t, claims.TokenID)

		// Just after expiry.
		svc.now = func() time.Time { return issued.Add(15*time.Minute + time.Second) }
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("malformed token", func(t *testing.T) {
		svc := newTestAuthService(t, newFakeUserStore(), &fakeAuditRecorder{})

		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		store := newFakeUserStore(user)

		other, err := NewAuthService(store, &fakeAuditRecorder{}, metrics.New(prometheus.NewRegistry()), "other-secret", 15*time.Minute)
		require.NoError(t, err)

		token, _, err := other.Authenticate(context.Background(), "a@x.com", "secret", model.RequestContext{})
		require.NoError(t, err)

		svc := newTestAuthService(t, store, &fakeAuditRecorder{})
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	reqCtx := model.RequestContext{ClientIP: "10.0.0.9"}

	t.Run("success stores hashed password and audits", func(t *testing.T) {
		store := newFakeUserStore()
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, store, audit)

		user, err := svc.Register(context.Background(), "new@x.com", "longenough", reqCtx)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Empty(t, user.PasswordHash)

		require.Len(t, store.created, 1)
		stored := store.created[0]
		assert.NotEqual(t, "longenough", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")))

		require.Len(t, audit.calls, 1)
		assert.Equal(t, model.ActionRegister, audit.calls[0].action)
		assert.Equal(t, model.StatusSuccess, audit.calls[0].status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := testUser(t, "a@x.com", "secret")
		svc := newTestAuthService(t, newFakeUserStore(user), &fakeAuditRecorder{})

		_, err := svc.Register(context.Background(), "a@x.com", "longenough", reqCtx)
		assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	})

	t.Run("rejects short password and malformed email", func(t *testing.T) {
		svc := newTestAuthService(t, newFakeUserStore(), &fakeAuditRecorder{})

		_, err := svc.Register(context.Background(), "a@x.com", "short", reqCtx)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = svc.Register(context.Background(), "not-an-email", "longenough", reqCtx)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	reqCtx := model.RequestContext{}

	t.Run("success updates hash and audits", func(t *testing.T) {
		user := testUser(t, "a@x.com", "oldpassword")
		store := newFakeUserStore(user)
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, store, audit)

		err := svc.ChangePassword(context.Background(), "a@x.com", "oldpassword", "newpassword", reqCtx)

		require.NoError(t, err)
		newHash := store.passwords[user.ID]
		require.NotEmpty(t, newHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword")))

		require.Len(t, audit.calls, 1)
		assert.Equal(t, model.ActionPasswordChange, audit.calls[0].action)
		assert.Equal(t, model.StatusSuccess, audit.calls[0].status)
	})

	t.Run("wrong current password fails and audits failure", func(t *testing.T) {
		user := testUser(t, "a@x.com", "oldpassword")
		audit := &fakeAuditRecorder{}
		svc := newTestAuthService(t, newFakeUserStore(user), audit)

		err := svc.ChangePassword(context.Background(), "a@x.com", "wrong", "newpassword", reqCtx)

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		require.Len(t, audit.calls, 1)
		assert.Equal(t, model.StatusFailure, audit.calls[0].status)
		assert.Equal(t, "incorrect current password", audit.calls[0].details[model.DetailReason])
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestAuthService(t, newFakeUserStore(), &fakeAuditRecorder{})

		err := svc.ChangePassword(context.Background(), "ghost@x.com", "x", "newpassword", reqCtx)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}
