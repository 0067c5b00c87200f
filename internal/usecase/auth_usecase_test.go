package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"project-compass/internal/domain/user"
	"project-compass/internal/pkg/jwt"
	ucauth "project-compass/internal/usecase/auth"

	"github.com/google/uuid"
)

type creatingUserRepo struct {
	mockUserRepo
}

func (creatingUserRepo) Create(_ context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func newTestJWT() jwt.Service {
	return jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuth_RegisterPublishesActivity(t *testing.T) {
	var logged, published []string

	uc := NewAuthUsecase(
		creatingUserRepo{}, recordingActivityRepo{kinds: &logged}, newTestJWT(),
		recordingNotifier{kinds: &published}, nil,
	)

	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "new@example.com",
		Password: "long enough",
		Name:     "New User",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr == nil || access == "" || refresh == "" {
		t.Fatalf("incomplete register result: access=%q refresh=%q", access, refresh)
	}
	if len(logged) != 1 || logged[0] != "user_registered" {
		t.Fatalf("activity log entries: %v", logged)
	}
	if len(published) != 1 || published[0] != "user_registered" {
		t.Fatalf("published events: %v", published)
	}
}

func TestAuth_FailedRegisterPublishesNothing(t *testing.T) {
	var logged, published []string

	uc := NewAuthUsecase(
		creatingUserRepo{}, recordingActivityRepo{kinds: &logged}, newTestJWT(),
		recordingNotifier{kinds: &published}, nil,
	)

	_, _, _, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "not-an-email",
		Password: "long enough",
	})
	if !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(logged) != 0 || len(published) != 0 {
		t.Fatalf("rejected register must not emit events: logged=%v published=%v", logged, published)
	}
}
