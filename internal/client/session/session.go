// Package session owns the device-local authentication session: the bearer
// token and the last-known user profile, mirrored to the persistent store.
// All session mutation is funneled through the Service; nothing else writes
// the session keys.
//
// The durable invariant is that token and user are either both present or
// both absent. Writes go through one transaction and loadSession discards
// any partial residue left behind by an interrupted run.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/dishcovery/dishcovery/internal/client/api"
	"github.com/dishcovery/dishcovery/internal/client/models"
	"github.com/dishcovery/dishcovery/internal/client/storage"
	"github.com/dishcovery/dishcovery/internal/common"
	"github.com/dishcovery/dishcovery/internal/dbx"
	"github.com/dishcovery/dishcovery/internal/logging"
	"github.com/google/uuid"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateAuthError       State = "auth_error"
)

// Backend is the slice of the API client the session layer uses.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (*api.AuthResult, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, imagePath string) (string, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// Service manages the authenticated session. Its only state between
// calls is the in-memory token/user mirror of the persistent store.
type Service struct {
	backend Backend
	db      *sql.DB
	log     logging.Logger

	mu    sync.Mutex
	state State
	token string
	user  *models.UserProfile
}

func NewService(backend Backend, db *sql.DB, log logging.Logger) *Service {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Service{
		backend: backend,
		db:      db,
		log:     log,
		state:   StateUnauthenticated,
	}
}

func (s *Service) kv() storage.Repository {
	return storage.NewSQLiteRepository(s.db)
}

// ResetBackend exposes the backend for the password-reset wizard, which
// runs outside the authenticated session.
func (s *Service) ResetBackend() Backend {
	return s.backend
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the current bearer token, or "" when logged out. Wired as
// the API client's token source.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the in-memory profile snapshot, or nil when logged out.
func (s *Service) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Service) setAuthenticated(token string, user *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.token = token
	s.user = user
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Login validates the credentials locally, then exchanges them for a
// session. No network call is made on validation failure.
func (s *Service) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	s.setState(StateAuthenticating)

	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.setState(StateAuthError)
		return nil, err
	}

	if err := s.persistSession(ctx, result.Token, &result.User); err != nil {
		s.setState(StateAuthError)
		return nil, err
	}

	s.setAuthenticated(result.Token, &result.User)
	return &result.User, nil
}

// Signup validates all fields locally, creates the account, and signs the
// new user in.
func (s *Service) Signup(ctx context.Context, name, email, password, confirmPassword string) (*models.UserProfile, error) {
	if err := ValidateRequired("name", name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if password != confirmPassword {
		return nil, &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}

	s.setState(StateAuthenticating)

	result, err := s.backend.Signup(ctx, name, email, password)
	if err != nil {
		s.setState(StateAuthError)
		return nil, err
	}

	if err := s.persistSession(ctx, result.Token, &result.User); err != nil {
		s.setState(StateAuthError)
		return nil, err
	}

	s.setAuthenticated(result.Token, &result.User)
	return &result.User, nil
}

// persistSession writes the token/user pair in one transaction so no
// partial state is ever durably observable.
func (s *Service) persistSession(ctx context.Context, token string, user *models.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, storage.KeyUserToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, storage.KeyUserData, data)
	})
}

// clearSession removes both session keys in one transaction.
func (s *Service) clearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, storage.KeyUserToken); err != nil {
			return err
		}
		return repo.Delete(ctx, storage.KeyUserData)
	})
}

// Logout clears the session and never fails observably: local clearing is
// mandatory, and store errors are logged rather than surfaced.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.clearSession(ctx); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "error", err)
	}
	return nil
}

// LoadSession restores the session from the store at process start without
// a network round-trip. A one-sided residue (token without user, or vice
// versa) or an expired JWT token is discarded and leaves the session
// unauthenticated.
func (s *Service) LoadSession(ctx context.Context) error {
	repo := s.kv()

	token, err := repo.Get(ctx, storage.KeyUserToken)
	if err != nil {
		return err
	}
	data, err := repo.Get(ctx, storage.KeyUserData)
	if err != nil {
		return err
	}

	if len(token) == 0 && len(data) == 0 {
		return nil
	}

	if len(token) == 0 || len(data) == 0 {
		s.log.Warn(ctx, "discarding partial session state")
		return s.clearSession(ctx)
	}

	if TokenExpired(string(token)) {
		s.log.Info(ctx, "discarding expired session token")
		return s.clearSession(ctx)
	}

	var user models.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "discarding unreadable session state", "error", err)
		return s.clearSession(ctx)
	}

	s.setAuthenticated(string(token), &user)
	return nil
}

// CurrentUser returns the persisted profile, or nil when there is none or
// the store cannot be read.
func (s *Service) CurrentUser(ctx context.Context) *models.UserProfile {
	data, err := s.kv().Get(ctx, storage.KeyUserData)
	if err != nil || len(data) == 0 {
		return nil
	}
	var user models.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// RefreshProfile re-fetches the profile from the backend and overwrites
// the persisted snapshot. The authenticated check is re-validated when the
// response arrives: a logout that completed while the fetch was in flight
// silently discards the result.
func (s *Service) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	s.mu.Lock()
	tokenAtCall := s.token
	authenticated := s.state == StateAuthenticated
	s.mu.Unlock()

	if !authenticated || tokenAtCall == "" {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.backend.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	stillCurrent := s.state == StateAuthenticated && s.token == tokenAtCall
	s.mu.Unlock()
	if !stillCurrent {
		s.log.Debug(ctx, "profile refresh result discarded, session changed")
		return nil, common.ErrUnauthenticated
	}

	if err := s.storeProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) storeProfile(ctx context.Context, user *models.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv().Set(ctx, storage.KeyUserData, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// UpdateProfile sends a partial update. When the backend echoes a full
// profile it becomes the new snapshot; otherwise the profile is re-fetched.
func (s *Service) UpdateProfile(ctx context.Context, fields map[string]any) (*models.UserProfile, error) {
	if s.State() != StateAuthenticated {
		return nil, common.ErrUnauthenticated
	}

	echoed, err := s.backend.UpdateProfile(ctx, fields)
	if err != nil {
		return nil, err
	}

	if echoed != nil && echoed.ID != "" {
		if err := s.storeProfile(ctx, echoed); err != nil {
			return nil, err
		}
		return echoed, nil
	}
	return s.RefreshProfile(ctx)
}

// UploadAvatar uploads a new profile image and updates the snapshot with
// the URL the backend assigned.
func (s *Service) UploadAvatar(ctx context.Context, imagePath string) (string, error) {
	if s.State() != StateAuthenticated {
		return "", common.ErrUnauthenticated
	}

	url, err := s.backend.UploadAvatar(ctx, imagePath)
	if err != nil {
		return "", err
	}

	user := s.CurrentUser(ctx)
	if user != nil {
		user.ProfileImage = url
		if err := s.storeProfile(ctx, user); err != nil {
			return "", err
		}
	}
	return url, nil
}

// ChangePassword validates locally, then asks the backend to swap the
// password. A wrong old password surfaces as invalid credentials.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	if err := ValidateRequired("oldPassword", oldPassword); err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	if newPassword != confirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	if s.State() != StateAuthenticated {
		return common.ErrUnauthenticated
	}

	return s.backend.ChangePassword(ctx, oldPassword, newPassword)
}

// HasSeenOnboarding reports whether the onboarding screens were completed
// on this device. Store errors read as "not seen".
func (s *Service) HasSeenOnboarding(ctx context.Context) bool {
	v, err := s.kv().Get(ctx, storage.KeyHasSeenOnboarding)
	return err == nil && string(v) == "true"
}

// MarkOnboardingSeen records onboarding completion.
func (s *Service) MarkOnboardingSeen(ctx context.Context) error {
	return s.kv().Set(ctx, storage.KeyHasSeenOnboarding, []byte("true"))
}

// InstallID returns this installation's stable identifier, generating and
// persisting one on first use.
func (s *Service) InstallID(ctx context.Context) string {
	repo := s.kv()

	v, err := repo.Get(ctx, storage.KeyInstallID)
	if err == nil && len(v) > 0 {
		return string(v)
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, storage.KeyInstallID, []byte(id)); err != nil {
		s.log.Warn(ctx, "failed to persist install id", "error", err)
	}
	return id
}
