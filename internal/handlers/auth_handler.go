package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/apperr"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/middleware"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
)

// Tokens are valid for 7 days; there is no server-side revocation, signout
// is a client-side token discard.
const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	store  store.Store
	secret []byte
}

func NewAuthHandler(s store.Store, secret string) *AuthHandler {
	return &AuthHandler{store: s, secret: []byte(secret)}
}

// Signup creates a user account and signs them in.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var in models.SignupRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Please provide name, email, and password."))
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	// Conflict check up front; the unique index on users.email is the
	// backstop for concurrent signups.
	if _, err := h.store.GetUserByEmail(c.Request.Context(), in.Email); err == nil {
		fail(c, apperr.ErrEmailTaken)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Service("Error creating user. Please try again."))
		return
	}

	now := time.Now().UTC()
	user, err := h.store.CreateUser(c.Request.Context(), models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		fail(c, err)
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		fail(c, apperr.Service("Error creating user. Please try again."))
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Signin verifies credentials and issues a fresh token.
// POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var in models.SigninRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.Validation("Please provide email and password."))
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	user, err := h.store.GetUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, apperr.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		fail(c, apperr.ErrInvalidCredentials)
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		fail(c, apperr.Service("Error signing in. Please try again."))
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Message: "Signed in successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Verify confirms the bearer token and returns the current user profile.
// GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	user, err := h.store.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user.Public()})
}

// UpdatePassword re-hashes and persists a new password after proving the
// current one.
// PUT /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var in models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		if strings.Contains(err.Error(), "min") {
			fail(c, apperr.Validation("New password must be at least 6 characters long."))
			return
		}
		fail(c, apperr.Validation("Please provide current and new password."))
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		fail(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		fail(c, apperr.ErrWrongCurrentPassword)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperr.Service("Error updating password. Please try again."))
		return
	}
	if err := h.store.UpdateUserPassword(c.Request.Context(), user.ID, string(hash)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *AuthHandler) signToken(user models.User) (string, error) {
	now := time.Now()
	claims := models.AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}
