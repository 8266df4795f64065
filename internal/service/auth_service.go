package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-media-api/internal/metrics"
	"go-media-api/internal/model"
)

const bcryptCost = 12

type credentialStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

type auditRecorder interface {
	Record(ctx context.Context, userID *string, email string, action string, status string, details map[string]string) error
}

// AuthService implements credential verification and token issuing. Every
// authentication attempt writes exactly one audit record; a failed audit
// write is logged and metered but never changes the authentication outcome.
type AuthService struct {
	users     credentialStore
	audit     auditRecorder
	metrics   *metrics.Metrics
	jwtSecret []byte
	accessTTL time.Duration
	now       func() time.Time
	sign      func(userID string) (string, error)
}

func NewAuthService(users credentialStore, audit auditRecorder, m *metrics.Metrics, jwtSecret string, accessTTL time.Duration) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access token TTL must be positive")
	}

	s := &AuthService{
		users:     users,
		audit:     audit,
		metrics:   m,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
	s.sign = s.signToken
	return s, nil
}

// Authenticate checks the submitted credentials and returns a signed access
// token. Unknown email and wrong password are indistinguishable to the
// caller; the stored audit record keeps the real reason.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string, reqCtx model.RequestContext) (string, model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", model.User{}, model.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		s.metrics.ObserveLogin(model.StatusFailure)
		s.recordAudit(ctx, nil, email, model.ActionLogin, model.StatusFailure,
			reqCtx, map[string]string{model.DetailReason: "user not found"})
		return "", model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.ObserveLogin(model.StatusFailure)
		s.recordAudit(ctx, &user.ID, email, model.ActionLogin, model.StatusFailure,
			reqCtx, map[string]string{model.DetailReason: "invalid password"})
		return "", model.User{}, model.ErrInvalidCredentials
	}

	token, err := s.sign(user.ID)
	if err != nil {
		s.metrics.ObserveLogin(model.StatusFailure)
		s.recordAudit(ctx, &user.ID, email, model.ActionLogin, model.StatusFailure,
			reqCtx, map[string]string{model.DetailReason: "token signing failed"})
		return "", model.User{}, fmt.Errorf("sign access token: %w", err)
	}

	s.metrics.ObserveLogin(model.StatusSuccess)
	s.recordAudit(ctx, &user.ID, email, model.ActionLogin, model.StatusSuccess, reqCtx, nil)

	user.PasswordHash = ""
	return token, user, nil
}

// Verify checks the token signature and expiry. It is a pure function of the
// token and the signing secret: no I/O and no audit write.
func (s *AuthService) Verify(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)
	if claims.UserID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) Register(ctx context.Context, email string, password string, reqCtx model.RequestContext) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, model.ErrInvalidInput
	}
	if len(password) < 8 || len(password) > 72 {
		return model.User{}, model.ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	s.recordAudit(ctx, &user.ID, email, model.ActionRegister, model.StatusSuccess,
		reqCtx, map[string]string{"method": "email_password"})

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, email string, currentPassword string, newPassword string, reqCtx model.RequestContext) error {
	email = strings.TrimSpace(email)
	if email == "" || currentPassword == "" {
		return model.ErrInvalidInput
	}
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return model.ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		s.recordAudit(ctx, &user.ID, email, model.ActionPasswordChange, model.StatusFailure,
			reqCtx, map[string]string{model.DetailReason: "incorrect current password"})
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	s.recordAudit(ctx, &user.ID, email, model.ActionPasswordChange, model.StatusSuccess,
		reqCtx, map[string]string{"method": "email_and_current_password"})
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) signToken(userID string) (string, error) {
	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// recordAudit persists one audit record for an attempt. The authentication
// outcome and the audit outcome are independent failure domains: an audit
// write error is surfaced to operators, not to the caller.
func (s *AuthService) recordAudit(ctx context.Context, userID *string, email string, action string, status string, reqCtx model.RequestContext, extra map[string]string) {
	details := map[string]string{}
	if reqCtx.ClientIP != "" {
		details[model.DetailClientIP] = reqCtx.ClientIP
	}
	if reqCtx.UserAgent != "" {
		details[model.DetailUserAgent] = reqCtx.UserAgent
	}
	for k, v := range extra {
		details[k] = v
	}

	if err := s.audit.Record(ctx, userID, email, action, status, details); err != nil {
		s.metrics.ObserveAuditWriteFailure()
		slog.Error("audit write failed",
			"action", action, "status", status, "email", email, "error", err)
	}
}
