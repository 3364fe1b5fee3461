package session

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/atikulmunna/chatlens/internal/apperr"
)

func TestValidPassword(t *testing.T) {
	good := []string{"Passw0rd!", "aB3$efgh", "Zz9?Zz9?Zz9?"}
	bad := []string{
		"",
		"Pa0!",       // too short
		"password1!", // no upper
		"PASSWORD1!", // no lower
		"Password!!", // no digit
		"Password11", // no symbol
		"Passw0rd!#", // '#' outside the allowed set
		"Pass w0rd!", // space outside the allowed set
	}

	for _, pw := range good {
		if !ValidPassword(pw) {
			t.Errorf("expected %q to be accepted", pw)
		}
	}
	for _, pw := range bad {
		if ValidPassword(pw) {
			t.Errorf("expected %q to be rejected", pw)
		}
	}
}

func TestLogin(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	sess, err := s.Login("alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if !sess.LoggedIn || sess.Email != "alice@example.com" || sess.Provider != ProviderPassword {
		t.Errorf("unexpected session: %+v", sess)
	}
	if sess.Token == "" {
		t.Error("expected a token")
	}

	got, ok := s.Get(sess.Token)
	if !ok || got.Email != "alice@example.com" {
		t.Errorf("expected stored session, got %+v (found=%v)", got, ok)
	}
}

func TestLoginRejectsWeakPassword(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	_, err := s.Login("alice@example.com", "password")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected no sessions, got %d", s.Len())
	}
}

func TestLoginRequiresEmail(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	if _, err := s.Login("  ", "Passw0rd!"); err == nil {
		t.Error("expected error for blank email")
	}
}

func TestLoginOAuthAcceptsAnyCredential(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))

	sess, err := s.LoginOAuth("bob@example.com", "not-a-real-jwt")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Provider != ProviderOAuth {
		t.Errorf("expected oauth provider, got %s", sess.Provider)
	}

	if _, err := s.LoginOAuth("bob@example.com", ""); err == nil {
		t.Error("expected error for missing credential")
	}
}

func TestLogout(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	sess, _ := s.Login("alice@example.com", "Passw0rd!")

	s.Logout(sess.Token)
	s.Logout("unknown")

	if _, ok := s.Get(sess.Token); ok {
		t.Error("expected session to be gone after logout")
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	a, _ := s.Login("alice@example.com", "Passw0rd!")
	b, _ := s.Login("alice@example.com", "Passw0rd!")

	if a.Token == b.Token {
		t.Error("expected distinct tokens per login")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", s.Len())
	}
}
