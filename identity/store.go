// Package identity owns the account registry and the process-wide session
// signal. Operations are synchronous and not safe for concurrent use; callers
// serialise access (see middleware.Serialize).
package identity

import (
	"errors"
	"fmt"
	"strings"

	"Storefront/kvstore"
	"Storefront/models"
	"Storefront/observable"

	"github.com/rs/zerolog"
)

// DefaultAdmin is seeded when the registry holds no admin record.
type DefaultAdmin struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

var StockAdmin = DefaultAdmin{
	Name:     "Admin",
	Email:    "admin123@gmail.com",
	Password: "Admin@123",
	Phone:    "0000000000",
}

type Store struct {
	kv      kvstore.Store
	logger  zerolog.Logger
	session *observable.Subject[bool]
}

// ProfileUpdate carries the self-service editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// New bootstraps the registry (empty list plus a default admin when none
// exists) and restores the session signal from the persisted snapshot.
func New(kv kvstore.Store, logger zerolog.Logger, admin DefaultAdmin) (*Store, error) {
	s := &Store{
		kv:     kv,
		logger: logger.With().Str("component", "identity").Logger(),
	}

	if _, ok, err := kv.Get(kvstore.AccountsKey); err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	} else if !ok {
		if err := kvstore.WriteJSON(kv, kvstore.AccountsKey, []models.Account{}); err != nil {
			return nil, fmt.Errorf("init accounts: %w", err)
		}
	}

	if err := s.ensureAdmin(admin); err != nil {
		return nil, err
	}

	_, loggedIn := s.readSnapshot()
	s.session = observable.NewSubject(loggedIn)
	return s, nil
}

func (s *Store) ensureAdmin(admin DefaultAdmin) error {
	accounts := s.loadAccounts()
	for _, a := range accounts {
		if a.IsAdmin() {
			return nil
		}
	}
	if admin.Email == "" {
		admin = StockAdmin
	}
	accounts = append(accounts, models.Account{
		Name:     admin.Name,
		Email:    models.NormalizeEmail(admin.Email),
		Password: admin.Password,
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
		Phone:    admin.Phone,
	})
	if err := s.saveAccounts(accounts); err != nil {
		return err
	}
	s.logger.Info().Str("email", models.NormalizeEmail(admin.Email)).Msg("Seeded default admin account")
	return nil
}

// SubscribeSession replays the current session state to fn and then reports
// every change. The returned function releases the subscription.
func (s *Store) SubscribeSession(fn func(loggedIn bool)) func() {
	return s.session.Subscribe(fn)
}

func (s *Store) IsAuthenticated() bool {
	return s.session.Value()
}

// CurrentAccount returns the snapshot taken at login time.
func (s *Store) CurrentAccount() (models.Account, bool) {
	if !s.IsAuthenticated() {
		return models.Account{}, false
	}
	return s.readSnapshot()
}

func (s *Store) IsAdmin() bool {
	cur, ok := s.CurrentAccount()
	return ok && cur.IsAdmin()
}

func (s *Store) SignUp(name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	accounts := s.loadAccounts()
	if indexOf(accounts, email) >= 0 {
		return "", ErrDuplicateAccount
	}

	accounts = append(accounts, models.Account{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleUser,
		Status:   models.StatusPending,
	})
	if err := s.saveAccounts(accounts); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", email).Msg("Account registered")
	return "Account created. Awaiting admin approval.", nil
}

func (s *Store) Login(email, password string) (models.Role, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	accounts := s.loadAccounts()
	idx := -1
	for i, a := range accounts {
		if models.NormalizeEmail(a.Email) == email && a.Password == password {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
		return "", ErrInvalidCredentials
	}

	found := accounts[idx]
	switch found.Status {
	case models.StatusPending:
		return "", ErrAccountPending
	case models.StatusBlocked:
		return "", ErrAccountBlocked
	}

	if err := kvstore.WriteJSON(s.kv, kvstore.CurrentUserKey, found); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error saving session snapshot")
		return "", err
	}
	s.session.Next(true)

	s.logger.Info().Str("email", email).Str("role", string(found.Role)).Msg("Logged in")
	return found.Role, nil
}

// Logout is idempotent. The session signal is cleared even if the snapshot
// could not be removed.
func (s *Store) Logout() error {
	if s.session.Value() {
		s.logger.Info().Msg("Logged out")
	}
	return s.endSession()
}

func (s *Store) UpdateProfile(update ProfileUpdate) (string, error) {
	cur, ok := s.CurrentAccount()
	if !ok {
		return "", ErrNotAuthenticated
	}

	accounts := s.loadAccounts()
	idx := indexOf(accounts, cur.Email)
	if idx < 0 {
		return "", ErrAccountNotFound
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	if update.Name != nil {
		accounts[idx].Name = strings.TrimSpace(*update.Name)
	}
	if update.Password != nil && *update.Password != "" {
		accounts[idx].Password = *update.Password
	}
	if err := s.saveAccounts(accounts); err != nil {
		return "", err
	}
	if err := kvstore.WriteJSON(s.kv, kvstore.CurrentUserKey, accounts[idx]); err != nil {
		s.logger.Error().Err(err).Msg("Error refreshing session snapshot")
		return "", err
	}
	return "Profile updated.", nil
}

func (s *Store) DeleteAccount() (string, error) {
	cur, ok := s.CurrentAccount()
	if !ok {
		return "", ErrNotAuthenticated
	}

	accounts := s.loadAccounts()
	target := cur
	if idx := indexOf(accounts, cur.Email); idx >= 0 {
		target = accounts[idx]
	}
	if target.IsAdmin() && countAdmins(accounts) <= 1 {
		return "", ErrLastAdmin
	}

	if err := s.saveAccounts(without(accounts, cur.Email)); err != nil {
		return "", err
	}
	_ = s.endSession()

	s.logger.Info().Str("email", cur.Email).Msg("Account deleted by owner")
	return "Account deleted.", nil
}

// ListAccounts returns a copy of the registry.
func (s *Store) ListAccounts() []models.Account {
	return s.loadAccounts()
}

// TopAccounts returns up to n active accounts in registry order.
func (s *Store) TopAccounts(n int) []models.Account {
	out := []models.Account{}
	for _, a := range s.loadAccounts() {
		if len(out) >= n {
			break
		}
		if a.Status == models.StatusActive {
			out = append(out, a)
		}
	}
	return out
}

// endSession flips the signal before clearing the snapshot so no listener
// observes a logged-in state without an account.
func (s *Store) endSession() error {
	s.session.Next(false)
	if err := s.kv.Remove(kvstore.CurrentUserKey); err != nil {
		s.logger.Error().Err(err).Msg("Error removing session snapshot")
		return err
	}
	return nil
}

func (s *Store) readSnapshot() (models.Account, bool) {
	var cur models.Account
	found, err := kvstore.ReadJSON(s.kv, kvstore.CurrentUserKey, &cur)
	if err != nil {
		if errors.Is(err, kvstore.ErrCorrupt) {
			s.logger.Warn().Err(err).Msg("Discarding unreadable session snapshot")
			_ = s.kv.Remove(kvstore.CurrentUserKey)
		} else {
			s.logger.Error().Err(err).Msg("Error reading session snapshot")
		}
		return models.Account{}, false
	}
	return cur, found
}

func (s *Store) loadAccounts() []models.Account {
	var accounts []models.Account
	if _, err := kvstore.ReadJSON(s.kv, kvstore.AccountsKey, &accounts); err != nil {
		s.logger.Warn().Err(err).Msg("Account registry unreadable, treating as empty")
		return []models.Account{}
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts
}

func (s *Store) saveAccounts(accounts []models.Account) error {
	if err := kvstore.WriteJSON(s.kv, kvstore.AccountsKey, accounts); err != nil {
		s.logger.Error().Err(err).Msg("Error saving account registry")
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func indexOf(accounts []models.Account, email string) int {
	email = models.NormalizeEmail(email)
	for i, a := range accounts {
		if models.NormalizeEmail(a.Email) == email {
			return i
		}
	}
	return -1
}

func without(accounts []models.Account, email string) []models.Account {
	email = models.NormalizeEmail(email)
	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if models.NormalizeEmail(a.Email) != email {
			out = append(out, a)
		}
	}
	return out
}

func countAdmins(accounts []models.Account) int {
	n := 0
	for _, a := range accounts {
		if a.IsAdmin() {
			n++
		}
	}
	return n
}
