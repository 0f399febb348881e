package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lector/config"
	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
	"lector/utils/security"
)

// AuthUsecase implements registration, login, session management and
// password changes.
type AuthUsecase struct {
	userRepo    port.UserRepository
	sessionRepo port.SessionRepository
	cfg         config.AuthConfig
	logger      *slog.Logger
}

func NewAuthUsecase(
	userRepo port.UserRepository,
	sessionRepo port.SessionRepository,
	cfg config.AuthConfig,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger.With("component", "auth_usecase"),
	}
}

// Register creates a user account. The first registered user becomes admin.
func (uc *AuthUsecase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	if len(username) < uc.cfg.MinUsernameLength || len(username) > uc.cfg.MaxUsernameLength {
		return nil, apperrors.NewValidationContextError(
			"username length out of bounds",
			"usecase", "auth_usecase", "register", map[string]interface{}{
				"min": uc.cfg.MinUsernameLength, "max": uc.cfg.MaxUsernameLength,
			})
	}
	if len(password) < uc.cfg.MinPasswordLength || len(password) > uc.cfg.MaxPasswordLength {
		return nil, apperrors.NewValidationContextError(
			"password length out of bounds",
			"usecase", "auth_usecase", "register", map[string]interface{}{
				"min": uc.cfg.MinPasswordLength, "max": uc.cfg.MaxPasswordLength,
			})
	}

	hash, err := security.HashPassword(password, uc.cfg.PBKDF2Iterations)
	if err != nil {
		return nil, err
	}

	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      count == 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", "user_id", user.ID, "is_admin", user.IsAdmin)
	return user, nil
}

// LoginResult carries everything the HTTP layer needs to set cookies.
type LoginResult struct {
	User        *domain.User
	Session     *domain.Session
	CookieValue string
	CSRFToken   string
}

// Login verifies credentials and mints a session. When the caller already
// holds MAX_ACTIVE_SESSIONS sessions, the least recently used one is
// evicted first.
func (uc *AuthUsecase) Login(ctx context.Context, username, password string, userAgent, ipAddress string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, domain.ErrInvalidCredentials
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	active, err := uc.sessionRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if active >= uc.cfg.MaxActiveSessions {
		if err := uc.sessionRepo.DeleteOldestForUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	token, err := security.MintSessionToken()
	if err != nil {
		return nil, err
	}

	duration := time.Duration(uc.cfg.SessionTimeoutDays) * 24 * time.Hour
	session, err := domain.NewSession(user.ID, token.CookieHash, duration)
	if err != nil {
		return nil, err
	}
	// The session id must match the id embedded in the cookie value.
	session.ID = token.SessionID
	if ua := strings.TrimSpace(userAgent); ua != "" {
		session.UserAgent = &ua
	}
	if ip := strings.TrimSpace(ipAddress); ip != "" {
		session.IPAddress = &ip
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	csrfToken, err := security.MintCSRFToken(uc.cfg.CSRFTokenLength)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", "user_id", user.ID, "session_id", session.ID)

	return &LoginResult{
		User:        user,
		Session:     session,
		CookieValue: token.CookieValue,
		CSRFToken:   csrfToken,
	}, nil
}

// Verify resolves a session cookie to a user context. Every failure mode
// collapses to ErrUnauthorized so callers cannot distinguish which check
// failed.
func (uc *AuthUsecase) Verify(ctx context.Context, cookieValue string) (*domain.UserContext, error) {
	sessionID, ok := security.ParseSessionCookie(cookieValue)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !security.VerifyCookieHash(cookieValue, session.CookieHash) {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := uc.sessionRepo.TouchLastUsed(ctx, session.ID, time.Now()); err != nil {
		uc.logger.Warn("failed to touch session", "session_id", session.ID, "error", err)
	}

	return &domain.UserContext{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		SessionID: session.ID,
		LoginAt:   session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the caller's current session.
func (uc *AuthUsecase) Logout(ctx context.Context, userID, sessionID uuid.UUID) error {
	return uc.sessionRepo.Delete(ctx, userID, sessionID)
}

// ChangePassword re-hashes and revokes every session of the caller.
func (uc *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !security.VerifyPassword(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidPassword
	}

	if len(newPassword) < uc.cfg.MinPasswordLength || len(newPassword) > uc.cfg.MaxPasswordLength {
		return apperrors.NewValidationContextError(
			"password length out of bounds",
			"usecase", "auth_usecase", "change_password", nil)
	}

	hash, err := security.HashPassword(newPassword, uc.cfg.PBKDF2Iterations)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if err := uc.sessionRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}

	uc.logger.Info("password changed, all sessions revoked", "user_id", userID)
	return nil
}

// ListSessions returns the caller's active sessions, flagging the one the
// request came in on.
func (uc *AuthUsecase) ListSessions(ctx context.Context, userID, currentSessionID uuid.UUID) ([]domain.SessionInfo, error) {
	sessions, err := uc.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, domain.SessionInfo{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			LastUsed:  session.LastUsed,
			ExpiresAt: session.ExpiresAt,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			Current:   session.ID == currentSessionID,
		})
	}
	return infos, nil
}

// RevokeSession deletes one of the caller's sessions by id.
func (uc *AuthUsecase) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	return uc.sessionRepo.Delete(ctx, userID, sessionID)
}

// UpdateProfile renames the caller and returns the updated profile.
// Sessions stay valid; only the display identity changes.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, username string) (*domain.PublicUser, error) {
	username = strings.TrimSpace(username)
	if len(username) < uc.cfg.MinUsernameLength || len(username) > uc.cfg.MaxUsernameLength {
		return nil, apperrors.NewValidationContextError(
			"username length out of bounds",
			"usecase", "auth_usecase", "update_profile", map[string]interface{}{
				"min": uc.cfg.MinUsernameLength, "max": uc.cfg.MaxUsernameLength,
			})
	}

	if err := uc.userRepo.UpdateUsername(ctx, userID, username); err != nil {
		return nil, err
	}

	uc.logger.Info("username changed", "user_id", userID)
	return uc.Profile(ctx, userID)
}

// Profile returns the caller's public profile.
func (uc *AuthUsecase) Profile(ctx context.Context, userID uuid.UUID) (*domain.PublicUser, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}
