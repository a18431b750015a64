package handlers

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/ripple-social/backend/internal/models"
	"github.com/ripple-social/backend/internal/services"
)

const sessionTokenTTL = 72 * time.Hour

// AuthHandler exchanges identity-provider tokens for local sessions
type AuthHandler struct {
	userService  *services.UserService
	firebaseAuth *auth.Client
	jwtSecret    string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *services.UserService, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		firebaseAuth: firebaseAuthClient,
		jwtSecret:    jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
}

// Login verifies a Firebase ID token, provisions the internal user on first
// sight and returns a local session JWT.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	ext := services.ExternalIdentity{FirebaseUID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ext.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		ext.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		ext.Image = picture
	}
	if ext.Email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ID token carries no email")
	}

	user, err := h.userService.ResolveOrProvision(c.Request().Context(), ext)
	if err != nil {
		return respondError(c, err)
	}

	sessionToken, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return respondOK(c, echo.Map{"token": sessionToken, "user": user})
}

// generateJWT generates a session JWT for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
