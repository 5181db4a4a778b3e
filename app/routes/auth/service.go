package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"campus-lms/app/database"
	"campus-lms/app/models"
)

// ErrSSOConflict is returned when the asserted email already belongs to an
// account bound to a different SSO identity.
var ErrSSOConflict = errors.New("email is linked to another sso identity")

// Service signs users in and mints their session tokens.
type Service struct {
	db     *sql.DB
	tokens *TokenIssuer
	cost   int

	// dummyHash backs the comparison made for accounts that cannot log in.
	dummyHash string
}

func NewService(db *sql.DB, tokens *TokenIssuer, bcryptCost int) *Service {
	dummy, err := HashPassword("campus-lms-dummy", bcryptCost)
	if err != nil {
		log.Printf("Warning: failed to prepare dummy hash: %v", err)
	}
	return &Service{db: db, tokens: tokens, cost: bcryptCost, dummyHash: dummy}
}

func (s *Service) Tokens() *TokenIssuer { return s.tokens }

// burnCompare spends the same bcrypt work as a real check so that unknown
// accounts take as long to reject as wrong passwords.
func (s *Service) burnCompare(password string) {
	CheckPasswordHash(password, s.dummyHash)
}

// Authenticate verifies an email/password pair. Unknown email, an account
// without password and a wrong password all yield ErrInvalidCredentials.
func (s *Service) Authenticate(email, password string) (Identity, error) {
	user, err := database.GetUserByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.burnCompare(password)
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.HasPassword() {
		s.burnCompare(password)
		return Identity{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, *user.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}

	return identityOf(user), nil
}

// AuthenticateSSO trusts an external identity assertion. The first call for
// an ssoID creates a STUDENT account without password; later calls return
// the same account.
func (s *Service) AuthenticateSSO(ssoID, email, name string) (Identity, error) {
	user, err := database.GetUserBySSOID(s.db, ssoID)
	if err == nil {
		return identityOf(user), nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return Identity{}, fmt.Errorf("lookup sso user: %w", err)
	}

	if id, err := s.linkByEmail(ssoID, email); !errors.Is(err, database.ErrNotFound) {
		return id, err
	}

	user = &models.User{
		Email: email,
		Name:  name,
		SSOID: &ssoID,
		Role:  models.RoleStudent,
	}
	if err := database.CreateUser(s.db, user); err != nil {
		if !errors.Is(err, database.ErrConflict) {
			return Identity{}, fmt.Errorf("create sso user: %w", err)
		}
		// Lost a race with a concurrent sign-up, either on the ssoID or
		// on the email.
		if user, err := database.GetUserBySSOID(s.db, ssoID); err == nil {
			return identityOf(user), nil
		}
		id, err := s.linkByEmail(ssoID, email)
		if err != nil {
			return Identity{}, fmt.Errorf("create sso user: %w", err)
		}
		return id, nil
	}
	return identityOf(user), nil
}

// linkByEmail binds ssoID to the account already holding email. It returns
// database.ErrNotFound when no such account exists.
func (s *Service) linkByEmail(ssoID, email string) (Identity, error) {
	existing, err := database.GetUserByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return Identity{}, err
		}
		return Identity{}, fmt.Errorf("lookup user: %w", err)
	}
	if existing.SSOID != nil {
		if *existing.SSOID == ssoID {
			return identityOf(existing), nil
		}
		return Identity{}, ErrSSOConflict
	}
	if err := database.LinkSSOID(s.db, existing.ID, ssoID); err != nil {
		return Identity{}, fmt.Errorf("link sso id: %w", err)
	}
	return identityOf(existing), nil
}

func (s *Service) IssueToken(id Identity) (string, error) {
	return s.tokens.GenerateJWT(id)
}

// Register creates a password account; used by the add_user command.
func (s *Service) Register(email, name, password string, role models.Role) (*models.User, error) {
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Email: email, Name: name, PasswordHash: &hash, Role: role}
	if err := database.CreateUser(s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword changes the password, or sets a first one for SSO-only
// accounts, in which case current is ignored.
func (s *Service) SetPassword(userID, current, next string) error {
	user, err := database.GetUserByID(s.db, userID)
	if err != nil {
		return err
	}
	if user.HasPassword() && !CheckPasswordHash(current, *user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(next, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return database.UpdateUserPassword(s.db, userID, hash)
}
