package identity

import (
	"fmt"

	"Storefront/models"
)

// AcceptAccount activates a pending or blocked account.
func (s *Store) AcceptAccount(email string) (string, error) {
	email = models.NormalizeEmail(email)
	accounts := s.loadAccounts()
	idx := indexOf(accounts, email)
	if idx < 0 {
		return "", ErrAccountNotFound
	}

	accounts[idx].Status = models.StatusActive
	if err := s.saveAccounts(accounts); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", email).Msg("Account accepted")
	return fmt.Sprintf("%s accepted.", accounts[idx].Name), nil
}

// BlockAccount blocks the account and ends its session if it is the one
// logged in.
func (s *Store) BlockAccount(email string) (string, error) {
	email = models.NormalizeEmail(email)
	accounts := s.loadAccounts()
	idx := indexOf(accounts, email)
	if idx < 0 {
		return "", ErrAccountNotFound
	}

	accounts[idx].Status = models.StatusBlocked
	if err := s.saveAccounts(accounts); err != nil {
		return "", err
	}
	s.logoutIfCurrent(email)

	s.logger.Info().Str("email", email).Msg("Account blocked")
	return fmt.Sprintf("%s blocked.", accounts[idx].Name), nil
}

func (s *Store) PromoteToAdmin(email string) (string, error) {
	email = models.NormalizeEmail(email)
	accounts := s.loadAccounts()
	idx := indexOf(accounts, email)
	if idx < 0 {
		return "", ErrAccountNotFound
	}

	accounts[idx].Role = models.RoleAdmin
	if accounts[idx].Status == "" {
		accounts[idx].Status = models.StatusActive
	}
	if err := s.saveAccounts(accounts); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", email).Msg("Account promoted to admin")
	return fmt.Sprintf("%s promoted to admin.", accounts[idx].Name), nil
}

// RemoveAccount deletes the record, refusing to remove the last admin, and
// ends its session if it is the one logged in.
func (s *Store) RemoveAccount(email string) (string, error) {
	email = models.NormalizeEmail(email)
	accounts := s.loadAccounts()
	idx := indexOf(accounts, email)
	if idx < 0 {
		return "", ErrAccountNotFound
	}
	if accounts[idx].IsAdmin() && countAdmins(accounts) <= 1 {
		return "", ErrLastAdmin
	}

	if err := s.saveAccounts(without(accounts, email)); err != nil {
		return "", err
	}
	s.logoutIfCurrent(email)

	s.logger.Info().Str("email", email).Msg("Account removed")
	return "User removed.", nil
}

// logoutIfCurrent compares against the persisted snapshot, not the caller.
func (s *Store) logoutIfCurrent(email string) {
	cur, ok := s.readSnapshot()
	if !ok || models.NormalizeEmail(cur.Email) != email {
		return
	}
	_ = s.endSession()
	s.logger.Info().Str("email", email).Msg("Forced logout")
}
