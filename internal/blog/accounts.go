package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/auth"
	"multiUserBlog/models"
	"multiUserBlog/repository"
)

// bcrypt ignores input beyond this length, so longer passwords are refused.
const maxPasswordBytes = 72

// Session is the result of a successful register or login.
type Session struct {
	Identity *auth.Identity
	Token    string
	Expires  time.Time
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the default role and logs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	u, err := s.createUser(ctx, in, models.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("blog: registered user id=%d", u.ID)
	return s.startSession(u)
}

// CreateMaintainer provisions a maintainer account. It is only reachable from
// the maintenance CLI.
func (s *Service) CreateMaintainer(ctx context.Context, in RegisterInput) (*models.User, error) {
	u, err := s.createUser(ctx, in, models.RoleMaintainer)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("blog: created maintainer id=%d", u.ID)
	return u, nil
}

func (s *Service) createUser(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if err := validate(
		field{name: "name", value: name, max: maxNameLen},
		field{name: "email", value: email, max: maxEmailLen},
		field{name: "password", value: in.Password},
	); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, apperr.Invalid("password", "Password must be at most 72 bytes.")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "look up email", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "hash password", err)
	}
	u, err := s.users.Create(ctx, &models.User{Name: name, Email: email, Password: hash, Role: role})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "create user", err)
	}
	return u, nil
}

// Login checks credentials and binds a new session to the user.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validate(
		field{name: "email", value: email},
		field{name: "password", value: password},
	); err != nil {
		return nil, err
	}
	u, err := s.lookupEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoSuchEmail
	}
	if err := auth.CheckPassword(u.Password, password); err != nil {
		if errors.Is(err, auth.ErrUnknownHash) {
			s.logger.Printf("blog: user id=%d has an unrecognised password hash", u.ID)
		}
		return nil, ErrBadPassword
	}
	if auth.NeedsRehash(u.Password) {
		s.upgradeHash(ctx, u, password)
	}
	return s.startSession(u)
}

// lookupEmail finds a user by normalised email, falling back to the exact
// input for rows written before emails were normalised.
func (s *Service) lookupEmail(ctx context.Context, email string) (*models.User, error) {
	norm := normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, norm)
	if err == nil && u == nil {
		if raw := strings.TrimSpace(email); raw != norm {
			u, err = s.users.GetByEmail(ctx, raw)
		}
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "look up email", err)
	}
	return u, nil
}

func (s *Service) upgradeHash(ctx context.Context, u *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Printf("blog: rehash user id=%d: %v", u.ID, err)
		return
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		s.logger.Printf("blog: store rehash for user id=%d: %v", u.ID, err)
		return
	}
	u.Password = hash
}

func (s *Service) startSession(u *models.User) (*Session, error) {
	tok, exp, err := s.sessions.Issue(u.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "issue session", err)
	}
	return &Session{Identity: auth.IdentityOf(u), Token: tok, Expires: exp}, nil
}

// ResolveSession maps a session token to the identity of a live user. A valid
// token whose user has since been removed resolves to nil with no error.
func (s *Service) ResolveSession(ctx context.Context, token string) (*auth.Identity, error) {
	id, err := s.sessions.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load session user", err)
	}
	return auth.IdentityOf(u), nil
}

// IssueToken returns a session token for an existing user. The maintenance
// CLI uses it to mint credentials for the gRPC API.
func (s *Service) IssueToken(ctx context.Context, userID int64) (string, time.Time, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.CodeInternal, "load user", err)
	}
	if u == nil {
		return "", time.Time{}, ErrUserNotFound
	}
	sess, err := s.startSession(u)
	if err != nil {
		return "", time.Time{}, err
	}
	return sess.Token, sess.Expires, nil
}

var _ auth.Resolver = (*Service)(nil)
