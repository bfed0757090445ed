package identity

import (
	"errors"
	"testing"

	"Storefront/kvstore"
	"Storefront/models"

	"github.com/rs/zerolog"
)

func newStore(t *testing.T, kv kvstore.Store) *Store {
	t.Helper()
	s, err := New(kv, zerolog.Nop(), StockAdmin)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func loginAdmin(t *testing.T, s *Store) {
	t.Helper()
	if _, err := s.Login(StockAdmin.Email, StockAdmin.Password); err != nil {
		t.Fatalf("admin login: %v", err)
	}
}

func TestBootstrapSeedsDefaultAdmin(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newStore(t, kv)

	accounts := s.ListAccounts()
	if len(accounts) != 1 || !accounts[0].IsAdmin() || accounts[0].Status != models.StatusActive {
		t.Fatalf("expected one active admin, got %+v", accounts)
	}

	// a second construction must not seed again
	s = newStore(t, kv)
	if n := len(s.ListAccounts()); n != 1 {
		t.Fatalf("expected 1 account after re-bootstrap, got %d", n)
	}
}

func TestBootstrapRecoversCorruptRegistry(t *testing.T) {
	kv := kvstore.NewMemory()
	_ = kv.Set(kvstore.AccountsKey, "{broken")
	_ = kv.Set(kvstore.CurrentUserKey, "{broken")

	s := newStore(t, kv)
	if s.IsAuthenticated() {
		t.Fatalf("corrupt snapshot must not restore a session")
	}
	if n := len(s.ListAccounts()); n != 1 {
		t.Fatalf("expected seeded admin only, got %d", n)
	}
}

func TestSessionRestoredFromSnapshot(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newStore(t, kv)
	loginAdmin(t, s)

	restored := newStore(t, kv)
	if !restored.IsAuthenticated() || !restored.IsAdmin() {
		t.Fatalf("expected restored admin session")
	}
}

func TestSignUp(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"Alice", "Alice@Example.com ", "pw", nil},
		{" ", "bob@example.com", "pw", ErrValidation},
		{"Bob", "", "pw", ErrValidation},
		{"Bob", "bob@example.com", "  ", ErrValidation},
		{"Alice Again", "alice@example.com", "other", ErrDuplicateAccount},
	}
	for _, tt := range tests {
		msg, err := s.SignUp(tt.name, tt.email, tt.password)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("SignUp(%q, %q): expected %v, got %v", tt.name, tt.email, tt.wantErr, err)
		}
		if tt.wantErr == nil && msg == "" {
			t.Fatalf("expected confirmation message")
		}
	}

	accounts := s.ListAccounts()
	if len(accounts) != 2 {
		t.Fatalf("expected admin + alice, got %+v", accounts)
	}
	alice := accounts[1]
	if alice.Email != "alice@example.com" || alice.Role != models.RoleUser || alice.Status != models.StatusPending {
		t.Fatalf("unexpected record: %+v", alice)
	}
}

func TestLoginFailures(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	_, _ = s.SignUp("Alice", "alice@example.com", "pw")
	_, _ = s.SignUp("Mallory", "mallory@example.com", "pw")
	_, _ = s.AcceptAccount("mallory@example.com")
	_, _ = s.BlockAccount("mallory@example.com")

	tests := []struct {
		email, password string
		wantErr         error
	}{
		{"", "pw", ErrMissingCredentials},
		{"alice@example.com", "", ErrMissingCredentials},
		{"alice@example.com", "wrong", ErrInvalidCredentials},
		{"nobody@example.com", "pw", ErrInvalidCredentials},
		{"alice@example.com", "pw", ErrAccountPending},
		{"MALLORY@example.com", "pw", ErrAccountBlocked},
	}
	for _, tt := range tests {
		if _, err := s.Login(tt.email, tt.password); !errors.Is(err, tt.wantErr) {
			t.Fatalf("Login(%q): expected %v, got %v", tt.email, tt.wantErr, err)
		}
		if s.IsAuthenticated() {
			t.Fatalf("Login(%q) must not open a session", tt.email)
		}
	}
}

func TestSignUpAcceptLoginScenario(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	var signals []bool
	unsubscribe := s.SubscribeSession(func(v bool) { signals = append(signals, v) })
	defer unsubscribe()

	if _, err := s.SignUp("Alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := s.Login("alice@example.com", "secret"); !errors.Is(err, ErrAccountPending) {
		t.Fatalf("expected pending error, got %v", err)
	}
	if _, err := s.AcceptAccount("alice@example.com"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	role, err := s.Login("alice@example.com", "secret")
	if err != nil || role != models.RoleUser {
		t.Fatalf("expected user login, got role=%q err=%v", role, err)
	}

	if !s.IsAuthenticated() || s.IsAdmin() {
		t.Fatalf("expected authenticated non-admin session")
	}
	cur, ok := s.CurrentAccount()
	if !ok || cur.Email != "alice@example.com" || cur.Status != models.StatusActive {
		t.Fatalf("unexpected current account: %+v", cur)
	}
	if len(signals) != 2 || signals[0] || !signals[1] {
		t.Fatalf("unexpected session signals: %v", signals)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newStore(t, kv)
	loginAdmin(t, s)

	for i := 0; i < 3; i++ {
		if err := s.Logout(); err != nil {
			t.Fatalf("logout %d: %v", i, err)
		}
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected logged out")
	}
	if _, ok, _ := kv.Get(kvstore.CurrentUserKey); ok {
		t.Fatalf("expected snapshot removed")
	}
	if _, ok := s.CurrentAccount(); ok {
		t.Fatalf("expected no current account")
	}
}

func TestUpdateProfile(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	name := "Root"
	if _, err := s.UpdateProfile(ProfileUpdate{Name: &name}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}

	loginAdmin(t, s)
	blank := "   "
	if _, err := s.UpdateProfile(ProfileUpdate{Name: &blank}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	name = "  Root  "
	password := "changed"
	if _, err := s.UpdateProfile(ProfileUpdate{Name: &name, Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}
	cur, _ := s.CurrentAccount()
	if cur.Name != "Root" || cur.Password != "changed" {
		t.Fatalf("snapshot not refreshed: %+v", cur)
	}
	if got := s.ListAccounts()[0]; got.Name != "Root" {
		t.Fatalf("registry not updated: %+v", got)
	}

	_ = s.Logout()
	if _, err := s.Login(StockAdmin.Email, "changed"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeleteAccountProtectsLastAdmin(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	if _, err := s.DeleteAccount(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}

	loginAdmin(t, s)
	before := s.ListAccounts()
	if _, err := s.DeleteAccount(); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected last admin error, got %v", err)
	}
	if after := s.ListAccounts(); len(after) != len(before) {
		t.Fatalf("registry changed: %+v", after)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("failed delete must keep the session")
	}
}

func TestDeleteAccountEndsSession(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	_, _ = s.SignUp("Alice", "alice@example.com", "pw")
	_, _ = s.AcceptAccount("alice@example.com")
	if _, err := s.Login("alice@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := s.DeleteAccount(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected session ended")
	}
	if len(s.ListAccounts()) != 1 {
		t.Fatalf("expected only admin left")
	}
}

func TestAdminMutatorsUnknownAccount(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	mutators := map[string]func(string) (string, error){
		"accept":  s.AcceptAccount,
		"block":   s.BlockAccount,
		"promote": s.PromoteToAdmin,
		"remove":  s.RemoveAccount,
	}
	for name, fn := range mutators {
		if _, err := fn("ghost@example.com"); !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("%s: expected not found, got %v", name, err)
		}
	}
}

func TestBlockForcesLogoutOfCurrentAccount(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	_, _ = s.SignUp("Alice", "alice@example.com", "pw")
	_, _ = s.SignUp("Bob", "bob@example.com", "pw")
	_, _ = s.AcceptAccount("alice@example.com")
	if _, err := s.Login("alice@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := s.BlockAccount("bob@example.com"); err != nil {
		t.Fatalf("block bob: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("blocking another account must keep the session")
	}

	msg, err := s.BlockAccount(" ALICE@example.com")
	if err != nil || msg != "Alice blocked." {
		t.Fatalf("block alice: msg=%q err=%v", msg, err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected forced logout")
	}
}

func TestPromoteAndRemove(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	_, _ = s.SignUp("Alice", "alice@example.com", "pw")

	if _, err := s.RemoveAccount(StockAdmin.Email); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected last admin protection, got %v", err)
	}
	if _, err := s.PromoteToAdmin("alice@example.com"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	loginAdmin(t, s)
	if _, err := s.RemoveAccount(StockAdmin.Email); err != nil {
		t.Fatalf("remove with a second admin present: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("removing the current account must end the session")
	}
	accounts := s.ListAccounts()
	if len(accounts) != 1 || accounts[0].Email != "alice@example.com" || !accounts[0].IsAdmin() {
		t.Fatalf("unexpected registry: %+v", accounts)
	}
}

func TestIsAdminIgnoresRoleCase(t *testing.T) {
	kv := kvstore.NewMemory()
	_ = kvstore.WriteJSON(kv, kvstore.AccountsKey, []models.Account{
		{Name: "Ops", Email: "ops@example.com", Password: "pw", Role: "Admin", Status: models.StatusActive},
	})
	s := newStore(t, kv)
	if n := len(s.ListAccounts()); n != 1 {
		t.Fatalf("mixed-case admin must count as admin, got %d accounts", n)
	}
	if _, err := s.Login("ops@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.IsAdmin() {
		t.Fatalf("expected admin")
	}
}

func TestTopAccounts(t *testing.T) {
	s := newStore(t, kvstore.NewMemory())
	_, _ = s.SignUp("Alice", "alice@example.com", "pw")
	_, _ = s.SignUp("Bob", "bob@example.com", "pw")
	_, _ = s.AcceptAccount("bob@example.com")

	top := s.TopAccounts(5)
	if len(top) != 2 || top[0].Email != StockAdmin.Email || top[1].Email != "bob@example.com" {
		t.Fatalf("unexpected top accounts: %+v", top)
	}
	if len(s.TopAccounts(1)) != 1 {
		t.Fatalf("expected limit respected")
	}
}
