package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	supa "github.com/supabase-community/supabase-go"

	"github.com/matchellatte/church-konek-web-admin/config"
	"github.com/matchellatte/church-konek-web-admin/middleware"
	"github.com/matchellatte/church-konek-web-admin/models"
)

type AuthHandler struct {
	supabase *supa.Client
	config   *config.Config
}

func NewAuthHandler(supabase *supa.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		supabase: supabase,
		config:   cfg,
	}
}

// Login verifies the admin's credentials against Supabase auth and issues a
// session token. Credentials are never accepted without the backend's
// say-so.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	session, err := h.supabase.SignInWithEmailPassword(req.Email, req.Password)
	if err != nil {
		log.Printf("[Login] Supabase sign-in failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Error:   "Invalid email or password",
		})
		return
	}

	token, err := h.generateJWT(session.User.ID.String(), req.Email)
	if err != nil {
		log.Printf("[Login] Error signing token: %v", err)
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to create session",
		})
		return
	}

	secure := h.config.Environment == "production"
	c.SetCookie("token", token, int((24 * time.Hour).Seconds()), "/", "", secure, true)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token: token,
			Email: req.Email,
		},
	})
}

// Logout clears the session cookie. The token itself simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	secure := h.config.Environment == "production"
	c.SetCookie("token", "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged out",
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := c.Get("user_id")
	email, _ := c.Get("email")
	role, _ := c.Get("role")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"user_id": userID,
			"email":   email,
			"role":    role,
		},
	})
}

func (h *AuthHandler) generateJWT(userID, email string) (string, error) {
	claims := middleware.Claims{
		UserID: userID,
		Email:  email,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
