package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set carried by every issued token. Besides the
// registered claims it embeds the identity attributes that the realtime
// layer needs for the whole lifetime of a connection: subject id, username,
// role and the device the token was issued to.
//
// DeviceID is optional; tokens issued without one (e.g. an operator logging
// in from a dashboard) fall into the default realtime room.
type TokenClaims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	DeviceID string `json:"device_id,omitempty"`
}

// Token bundles a parsed or freshly signed JWT together with its claims.
type Token struct {
	// Token is the underlying JWT object (nil for tokens that were only
	// generated, never re-parsed).
	Token *jwt.Token `json:"-"`

	// SignedString is the compact serialized form sent to clients.
	SignedString string `json:"token"`

	// Claims holds the decoded claim set.
	Claims TokenClaims `json:"-"`
}
