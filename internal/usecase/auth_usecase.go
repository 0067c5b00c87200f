package usecase

import (
	"context"
	"errors"
	"log"

	"project-compass/internal/domain/user"
	"project-compass/internal/pkg/jwt"
	"project-compass/internal/repository"
	ucauth "project-compass/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (*user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (*user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	users    repository.UserRepository
	activity repository.ActivityRepository
	jwt      jwt.Service
	notifier ActivityNotifier
	logger   *log.Logger
}

func NewAuthUsecase(users repository.UserRepository, activity repository.ActivityRepository, jwtSvc jwt.Service, notifier ActivityNotifier, logger *log.Logger) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(users),
		users:    users,
		activity: activity,
		jwt:      jwtSvc,
		notifier: notifier,
		logger:   logger,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (*user.User, string, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := u.tokenPair(usr)
	if err != nil {
		return nil, "", "", err
	}

	u.recordActivity(ctx, "user_registered", usr)
	return usr, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (*user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := u.tokenPair(usr)
	if err != nil {
		return nil, "", "", err
	}

	if err := u.users.TouchLastLogin(ctx, usr.ID); err != nil && u.logger != nil {
		u.logger.Printf("[Auth] touch last login failed user=%s err=%v", usr.ID, err)
	}
	return usr, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}
	if usr.Status != user.StatusActive {
		return "", "", ErrUnauthorized
	}

	access, refresh, err := u.tokenPair(usr)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (u *Auth) tokenPair(usr *user.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) recordActivity(ctx context.Context, kind string, usr *user.User) {
	if u.activity != nil {
		id := usr.ID
		if err := u.activity.Insert(ctx, kind, &id, usr.Email, ""); err != nil && u.logger != nil {
			u.logger.Printf("[Auth] activity log failed kind=%s err=%v", kind, err)
		}
	}
	if u.notifier != nil {
		u.notifier.Publish(kind, usr.Email, "")
	}
}
