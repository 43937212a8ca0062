package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-stories/internal/service"
)

// CookieConfig describe la cookie que transporta el token de sesion.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AccountHandler mantiene dependencias para registro y sesion.
type AccountHandler struct {
	logger   *zap.Logger
	accounts *service.AccountService
	sessions *service.SessionService
	cookie   CookieConfig
}

// NewAccountHandler crea una instancia de AccountHandler con dependencias necesarias.
func NewAccountHandler(logger *zap.Logger, accounts *service.AccountService, sessions *service.SessionService, cookie CookieConfig) *AccountHandler {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	return &AccountHandler{
		logger:   logger,
		accounts: accounts,
		sessions: sessions,
		cookie:   cookie,
	}
}

// Register maneja POST /auth/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, h.logger, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": account})
}

// Login maneja POST /auth/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.logger, "login", err)
		return
	}

	token, err := h.sessions.Issue(account)
	if err != nil {
		writeServiceError(c, h.logger, "issue session", err)
		return
	}

	h.setCookie(c, token.Token, int(time.Until(token.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"user":      account,
		"token":     token.Token,
		"expiresAt": token.ExpiresAt,
	})
}

// Logout maneja POST /auth/logout. Siempre responde 200.
func (h *AccountHandler) Logout(c *gin.Context) {
	if token := sessionToken(c, h.cookie.Name); token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.logger.Warn("revoke session failed", zap.Error(err))
		}
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session maneja GET /auth/session y devuelve la identidad actual.
func (h *AccountHandler) Session(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}

func (h *AccountHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
