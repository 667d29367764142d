package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

// Claims represents the access token claims issued by the login server
type Claims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Permissions int64  `json:"permissions"`
	Activated   int64  `json:"activated"`
	jwt.RegisteredClaims
}

// PlayerFromToken reads the local player's identity out of an access token.
// The signature is not checked here; the game server verifies the token on
// connect and the client only needs to know which seat is its own.
func PlayerFromToken(tokenString string) (*models.Player, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}

	player := &models.Player{
		ID:          strconv.FormatInt(claims.UserID, 10),
		Username:    claims.Username,
		Permissions: claims.Permissions,
		Activated:   claims.Activated,
	}

	if player.IsBanned() {
		return nil, fmt.Errorf("user is banned")
	}
	if !player.IsActive() {
		return nil, fmt.Errorf("user not activated")
	}

	return player, nil
}
