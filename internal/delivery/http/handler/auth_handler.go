package handler

import (
	"errors"
	"time"

	"intern-hub/internal/delivery/http/dto"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/usecase"
	ucauth "intern-hub/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc           usecase.AuthUsecase
	metrics      DomainMetrics
	cookieSecure bool
	sessionTTL   time.Duration
}

func NewAuthHandler(uc usecase.AuthUsecase, metrics DomainMetrics, cookieSecure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: metricsOrNop(metrics), cookieSecure: cookieSecure, sessionTTL: sessionTTL}
}

// RegisterPublicRoutes mounts the endpoints reachable without a session.
func (h *AuthHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
}

// RegisterRoutes mounts the endpoints that need a session.
func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req ucauth.RegisterInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.metrics.UserRegistered(usr.Role.String())
	return response.Created(c, "User created successfully", dto.NewUserResponse(usr))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req ucauth.LoginInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return response.Success(c, fiber.StatusOK, "Logged in successfully", dto.LoginResponse{
		User:         dto.NewUserResponse(usr),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		Redirect:     access.DashboardPath(usr.Role),
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken), errors.Is(err, usecase.ErrTokenRevoked):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
		default:
			return internalError(err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, tokens)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	if err := h.uc.Logout(c.Context(), sess); err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
		}
		return internalError(err)
	}

	c.ClearCookie(middleware.SessionCookieName)
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	usr, err := h.uc.Me(c.Context(), sess)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr := commonError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "User with this email already exists", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return internalError(err)
	}
}
