package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doit/backend"
	"doit/models"
	"doit/utils"

	"go.uber.org/zap"
)

// DefaultSessionService keeps the credential record in durable storage and
// resolves identity through the auth backend.
type DefaultSessionService struct {
	Backend backend.Client
	Store   utils.KV
	Logger  *zap.Logger
}

func recordKey(scope string) string {
	return utils.AuthRecordPrefix + scope
}

func (s *DefaultSessionService) loadRecord(ctx context.Context, scope string) (*models.AuthRecord, error) {
	data, err := s.Store.Get(ctx, recordKey(scope))
	if errors.Is(err, utils.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load auth record: %w", err)
	}
	var rec models.AuthRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("parse auth record: %w", err)
	}
	return &rec, nil
}

func (s *DefaultSessionService) saveRecord(ctx context.Context, scope string, rec models.AuthRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal auth record: %w", err)
	}
	if err := s.Store.Set(ctx, recordKey(scope), string(data), utils.AuthRecordTTL); err != nil {
		return fmt.Errorf("save auth record: %w", err)
	}
	return nil
}

func sessionFromRecord(rec *models.AuthRecord) *models.Session {
	if rec == nil {
		return nil
	}
	return &models.Session{User: rec.User, Token: rec.Token, Kind: rec.Kind}
}

// Restore re-validates the stored credential against the backend.
func (s *DefaultSessionService) Restore(ctx context.Context, scope string) (*models.Session, error) {
	rec, err := s.loadRecord(ctx, scope)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	var user models.User
	var fetchErr error
	switch rec.Kind {
	case models.CredentialAdmin:
		user, fetchErr = s.Backend.FetchAdmin(ctx, rec.Token)
	default:
		user, fetchErr = s.Backend.FetchUser(ctx, rec.Token)
	}

	if fetchErr != nil {
		if backend.IsAuthRejected(fetchErr) {
			// The credential is dead; remove it so stale tokens cannot
			// resurrect a session later.
			if delErr := s.Store.Del(ctx, recordKey(scope)); delErr != nil {
				s.Logger.Error("failed to clear rejected credential", zap.Error(delErr))
			}
			s.Logger.Info("credential rejected, session cleared", zap.String("scope", scope))
			return nil, nil
		}
		// Transient failure: keep the credential, leave the session
		// unresolved until retried.
		s.Logger.Warn("session restore failed, credential preserved",
			zap.String("scope", scope), zap.Error(fetchErr))
		return nil, fetchErr
	}

	if rec.Kind == models.CredentialAdmin {
		user.Role = models.RoleAdmin
	}
	rec.User = user
	if err := s.saveRecord(ctx, scope, *rec); err != nil {
		s.Logger.Error("failed to refresh auth record", zap.Error(err))
	}
	return sessionFromRecord(rec), nil
}

// Current reads the durable record without revalidating it.
func (s *DefaultSessionService) Current(ctx context.Context, scope string) (*models.Session, error) {
	rec, err := s.loadRecord(ctx, scope)
	if err != nil {
		return nil, err
	}
	return sessionFromRecord(rec), nil
}

// Login authenticates a homeowner or provider. Failures propagate as errors
// for the caller to surface.
func (s *DefaultSessionService) Login(ctx context.Context, scope, mobNumber, password, role string) (*models.Session, error) {
	token, user, err := s.Backend.Login(ctx, mobNumber, password, role)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	rec := models.AuthRecord{Kind: models.CredentialUser, Token: token, User: user}
	if err := s.saveRecord(ctx, scope, rec); err != nil {
		return nil, err
	}
	s.Logger.Info("user logged in", zap.String("scope", scope), zap.String("role", user.Role))
	return sessionFromRecord(&rec), nil
}

// Signup registers a new account and opens a session with the returned token.
func (s *DefaultSessionService) Signup(ctx context.Context, scope string, req SignupInput) (*models.Session, error) {
	token, user, err := s.Backend.Signup(ctx, backend.SignupRequest{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		MobNumber: req.MobNumber,
		Role:      req.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	rec := models.AuthRecord{Kind: models.CredentialUser, Token: token, User: user}
	if err := s.saveRecord(ctx, scope, rec); err != nil {
		return nil, err
	}
	s.Logger.Info("user signed up", zap.String("scope", scope), zap.String("role", user.Role))
	return sessionFromRecord(&rec), nil
}

// AdminLogin stores an admin credential. It deliberately reports failure as
// false instead of an error; callers show a generic rejection either way.
func (s *DefaultSessionService) AdminLogin(ctx context.Context, scope, adminID, password string) bool {
	token, user, err := s.Backend.AdminLogin(ctx, adminID, password)
	if err != nil {
		s.Logger.Warn("admin login failed", zap.String("adminId", adminID), zap.Error(err))
		return false
	}

	user.Role = models.RoleAdmin
	rec := models.AuthRecord{Kind: models.CredentialAdmin, Token: token, User: user}
	if err := s.saveRecord(ctx, scope, rec); err != nil {
		s.Logger.Error("failed to store admin credential", zap.Error(err))
		return false
	}
	s.Logger.Info("admin logged in", zap.String("scope", scope))
	return true
}

// Logout clears the durable credential. The backend notification is
// best-effort; the local credential goes away regardless.
func (s *DefaultSessionService) Logout(ctx context.Context, scope string) error {
	rec, err := s.loadRecord(ctx, scope)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}

	if err := s.Backend.Logout(ctx, rec.Token); err != nil {
		s.Logger.Warn("backend logout failed", zap.Error(err))
	}
	return s.Store.Del(ctx, recordKey(scope))
}
