package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// fakeUserStore is an in-memory UserStorage for tests.
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return storage.ErrEmailTaken
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("register and authenticate", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())

		user, err := authn.Register(ctx, "alice@example.com", "Alice", "correct horse battery")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "correct horse battery" {
			t.Error("password stored in plain text")
		}

		got, err := authn.Authenticate(ctx, "alice@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated user = %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		if _, err := authn.Register(ctx, "Bob@Example.com", "Bob", "longpassword"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := authn.Authenticate(ctx, "bob@example.com", "longpassword"); err != nil {
			t.Errorf("Authenticate with lowercased email failed: %v", err)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		if _, err := authn.Register(ctx, "alice@example.com", "Alice", "longpassword"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := authn.Authenticate(ctx, "alice@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		if _, err := authn.Authenticate(ctx, "nobody@example.com", "whatever123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		if _, err := authn.Register(ctx, "alice@example.com", "Alice", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		for _, email := range []string{"", "no-at-sign", "@start", "end@"} {
			if _, err := authn.Register(ctx, email, "X", "longpassword"); !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("Register(%q) = %v, want ErrInvalidEmail", email, err)
			}
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		authn := NewPasswordAuthenticator(newFakeUserStore())
		if _, err := authn.Register(ctx, "alice@example.com", "Alice", "longpassword"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := authn.Register(ctx, "alice@example.com", "Imposter", "longpassword"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register duplicate = %v, want ErrEmailExists", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("round trip", func(t *testing.T) {
		manager := NewJWTManager("test-secret-key-for-tests", time.Hour)

		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "user-1" {
			t.Errorf("UserID = %s, want user-1", claims.UserID)
		}
		if claims.Email != "alice@example.com" {
			t.Errorf("Email = %s, want alice@example.com", claims.Email)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		manager := NewJWTManager("test-secret-key-for-tests", -time.Minute)

		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		manager := NewJWTManager("test-secret-key-for-tests", time.Hour)
		other := NewJWTManager("a-completely-different-key", time.Hour)

		token, err := other.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		manager := NewJWTManager("test-secret-key-for-tests", time.Hour)
		if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate = %v, want ErrInvalidToken", err)
		}
	})
}
