package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/jihan212/BUBT-DX/internal/app"
	"github.com/jihan212/BUBT-DX/internal/common"
	"github.com/jihan212/BUBT-DX/internal/domain/auth"
	"github.com/jihan212/BUBT-DX/internal/domain/user"
	"github.com/jihan212/BUBT-DX/internal/http/middleware"
	"github.com/jihan212/BUBT-DX/internal/http/response"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	auth    *app.AuthService
	limiter middleware.Limiter
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Major          string `json:"major"`
	GraduationYear int    `json:"graduationYear"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Position       string `json:"position"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message      string     `json:"message"`
	User         *user.User `json:"user"`
	AccessToken  string     `json:"accessToken,omitempty"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    string     `json:"expiresAt,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		key := "register:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "registration rate limit exceeded", nil))
			return
		}
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.auth.Register(r.Context(), app.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           req.Role,
		Major:          req.Major,
		GraduationYear: req.GraduationYear,
		Phone:          req.Phone,
		Company:        req.Company,
		Position:       req.Position,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, authResponse{Message: "User registered successfully", User: created})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		key := "login:ip:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "login rate limit exceeded", nil))
			return
		}
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		response.Error(w, common.NewValidationError("email and password are required", map[string]string{
			"email":    "email is required",
			"password": "password is required",
		}))
		return
	}
	pair, account, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	setSessionCookies(w, pair)
	response.JSON(w, http.StatusOK, authResponse{
		Message:      "Login successful",
		User:         account,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		// fall back to the cookie when no body was sent
		req.RefreshToken = ""
	}
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		if cookie, err := r.Cookie(refreshCookie); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		response.Error(w, common.NewError(common.CodeUnauthorized, "refresh token is required", nil))
		return
	}
	pair, account, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		response.Error(w, err)
		return
	}
	setSessionCookies(w, pair)
	response.JSON(w, http.StatusOK, authResponse{
		Message:      "Session refreshed",
		User:         account,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		token = cookie.Value
	}
	if err := h.auth.Logout(r.Context(), token); err != nil {
		response.Error(w, err)
		return
	}
	clearSessionCookies(w)
	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func setSessionCookies(w http.ResponseWriter, pair *auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    pair.RefreshToken,
		Path:     "/api/auth",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: middleware.SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: refreshCookie, Value: "", Path: "/api/auth", MaxAge: -1, HttpOnly: true})
}
