package usecase

import (
	"context"
	"errors"
	"time"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/pkg/jwt"
	ucauth "intern-hub/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrInternal            = errors.New("internal error")
)

// Tokens is the pair handed out on login and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Revoker remembers logged-out token ids.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	Logout(ctx context.Context, sess access.Session) error
	Me(ctx context.Context, sess access.Session) (user.User, error)
	Authenticate(ctx context.Context, accessToken string) (access.Session, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	revoker Revoker
	events  event.Publisher
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, revoker Revoker, events event.Publisher, bcryptCost int) *Auth {
	if events == nil {
		events = event.Discard{}
	}
	return &Auth{
		authSvc: ucauth.NewService(users, bcryptCost),
		users:   users,
		jwt:     jwtSvc,
		revoker: revoker,
		events:  events,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, err
	}
	u.events.Publish(event.New(event.UserRegistered, usr.ID))
	return usr, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}

	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}
	if u.isRevoked(ctx, claims.TokenID()) {
		return Tokens{}, ErrTokenRevoked
	}

	// The role is re-read so a refreshed token never outlives a role change.
	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}

	tokens, err := u.issue(usr)
	if err != nil {
		return Tokens{}, err
	}
	if u.revoker != nil {
		_ = u.revoker.Revoke(ctx, claims.TokenID(), time.Until(claims.ExpiresAt()))
	}
	return tokens, nil
}

func (u *Auth) Logout(ctx context.Context, sess access.Session) error {
	if !sess.Valid() {
		return ErrUnauthorized
	}
	if u.revoker == nil || sess.TokenID == "" {
		return nil
	}
	if err := u.revoker.Revoke(ctx, sess.TokenID, u.jwt.AccessTTL()); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Auth) Me(ctx context.Context, sess access.Session) (user.User, error) {
	if !sess.Valid() {
		return user.User{}, ErrUnauthorized
	}
	return u.authSvc.GetUser(ctx, sess.UserID)
}

// Authenticate turns an access token into the request session.
func (u *Auth) Authenticate(ctx context.Context, accessToken string) (access.Session, error) {
	if accessToken == "" {
		return access.Session{}, ErrUnauthorized
	}
	claims, err := u.jwt.ValidateToken(accessToken)
	if err != nil || u.jwt.IsRefreshToken(claims) {
		return access.Session{}, ErrUnauthorized
	}

	sess := access.Session{UserID: claims.UserID, Role: user.Role(claims.Role), TokenID: claims.TokenID()}
	if !sess.Valid() {
		return access.Session{}, ErrUnauthorized
	}
	if u.isRevoked(ctx, sess.TokenID) {
		return access.Session{}, ErrTokenRevoked
	}
	return sess, nil
}

func (u *Auth) issue(usr user.User) (Tokens, error) {
	accessTok, err := u.jwt.GenerateAccessToken(usr.ID, usr.Role.String())
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID, usr.Role.String())
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{
		AccessToken:  accessTok,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.jwt.AccessTTL() / time.Second),
	}, nil
}

// isRevoked fails open: a revocation store error lets the token through.
func (u *Auth) isRevoked(ctx context.Context, tokenID string) bool {
	if u.revoker == nil {
		return false
	}
	revoked, err := u.revoker.IsRevoked(ctx, tokenID)
	return err == nil && revoked
}
