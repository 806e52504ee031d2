package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role names carried in the roleName claim. Navigation and route groups
// are keyed on these exact strings.
const (
	RoleAdmin        = "admin"
	RoleMainUser     = "mainUser"
	RoleFreightAgent = "freightAgent"
	RoleCoordinator  = "coordinator"
	RoleUnknown      = ""
)

// RoleClaims is the decoded, advisory view of an access token. It drives UI
// gating only; authorization is always re-checked per request against the
// session table and role column.
type RoleClaims struct {
	Email    string
	UserID   int
	RoleName string
	AgentID  int
}

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("freightline")
}

// GenerateJWT creates a new access token for the given user.
// Access tokens are short-lived (15 minutes).
func GenerateJWT(email string, userID int, roleName string, agentID int) (string, error) {
	claims := jwt.MapClaims{
		"email":    email,
		"userId":   userID,
		"roleName": roleName,
		"type":     "access",
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
	// agentID is only meaningful for freight agents; omit it elsewhere so
	// decoders can distinguish "no agent" from agent 0.
	if agentID > 0 {
		claims["agentID"] = agentID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// GenerateRefreshToken creates a refresh token bound to a single session/device.
// Refresh tokens are long-lived (15 days).
func GenerateRefreshToken(email string, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"email":     email,
		"type":      "refresh",
		"sessionId": sessionID,
		"exp":       time.Now().Add(15 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateJWT parses and validates a JWT string.
func ValidateJWT(tokenStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}

// DecodeRoleClaims extracts the role claims from a validated token. A
// malformed or unverifiable token yields RoleUnknown so every role-gated
// surface fails closed.
func DecodeRoleClaims(tokenStr string) RoleClaims {
	token, err := ValidateJWT(tokenStr)
	if err != nil {
		return RoleClaims{RoleName: RoleUnknown}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return RoleClaims{RoleName: RoleUnknown}
	}

	rc := RoleClaims{}
	rc.Email, _ = claims["email"].(string)
	rc.RoleName, _ = claims["roleName"].(string)
	if id, ok := claims["userId"].(float64); ok {
		rc.UserID = int(id)
	}
	if id, ok := claims["agentID"].(float64); ok {
		rc.AgentID = int(id)
	}
	return rc
}

func ValidatePassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}
