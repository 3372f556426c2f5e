package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/studytrackr/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrSessionRevoked     = errors.New("session revoked")
)

// Provider signs users up, in and out against the local store.
type Provider struct {
	store  *store.Store
	logger *zap.Logger
	cost   int
}

func NewProvider(st *store.Store, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{store: st, logger: logger, cost: DefaultCost}
}

// WithCost sets the bcrypt cost used for new password hashes.
func (p *Provider) WithCost(cost int) *Provider {
	p.cost = cost
	return p
}

func (p *Provider) SignUp(sess *Session, email, password, displayName string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if _, err := p.store.GetUserByEmail(email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("sign up: %w", err)
	}

	hash, err := hashPassword(password, p.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}
	u, err := p.store.CreateUser(email, hash, displayName)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if err := p.open(sess, u); err != nil {
		return err
	}
	p.logger.Info("user signed up", zap.Int64("user_id", u.ID))
	return nil
}

func (p *Provider) SignIn(sess *Session, email, password string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return ErrInvalidCredentials
	}
	u, err := p.store.GetUserByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		p.logger.Warn("sign in failed", zap.String("reason", "unknown email"))
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if !checkPassword(password, u.PasswordHash) {
		p.logger.Warn("sign in failed", zap.Int64("user_id", u.ID), zap.String("reason", "bad password"))
		return ErrInvalidCredentials
	}
	if err := p.open(sess, u); err != nil {
		return err
	}
	p.logger.Info("user signed in", zap.Int64("user_id", u.ID))
	return nil
}

// Resume restores a session from a token issued by an earlier sign-in.
func (p *Provider) Resume(sess *Session, token string) error {
	a, err := p.store.GetAuthSession(token)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotSignedIn
	}
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	if a.RevokedAt != nil {
		return ErrSessionRevoked
	}
	u, err := p.store.GetUser(a.UserID)
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	sess.signIn(u, token)
	p.logger.Debug("session resumed", zap.Int64("user_id", u.ID))
	return nil
}

// SignOut revokes the session token and clears the session. Signing out a
// session that is not signed in only moves it to StateSignedOut.
func (p *Provider) SignOut(sess *Session) error {
	if sess.SignedIn() {
		if err := p.store.RevokeAuthSession(sess.token); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		p.logger.Info("user signed out", zap.Int64("user_id", sess.user.ID))
	}
	sess.signOut()
	return nil
}

func (p *Provider) open(sess *Session, u *store.User) error {
	token := uuid.NewString()
	if _, err := p.store.CreateAuthSession(token, u.ID); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	sess.signIn(u, token)
	return nil
}
