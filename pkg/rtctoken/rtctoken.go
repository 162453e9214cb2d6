package rtctoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andressep95/session-service/pkg/clock"
)

// Permission is the transport-level privilege embedded in a channel token.
type Permission string

const (
	// PermissionPublisher may send and receive media on the channel.
	PermissionPublisher Permission = "publisher"
	// PermissionSubscriber may only receive.
	PermissionSubscriber Permission = "subscriber"
)

// messagingPrincipal is the single fixed role messaging tokens carry.
const messagingPrincipal Permission = "user"

const (
	tokenTypeChannel   = "rtc"
	tokenTypeMessaging = "rtm"
)

// Claims bind a token to one subject, and for channel tokens one channel and
// one permission level. Expiry is absolute; the transport rejects the token
// past it.
type Claims struct {
	jwt.RegisteredClaims
	Channel    string     `json:"chan,omitempty"`
	Permission Permission `json:"perm"`
	TokenType  string     `json:"type"`
}

// Builder mints the two transport credential kinds from the shared app
// secret. Given identical inputs and the same clock instant it produces
// identical bytes; the expiry is the only component that varies across calls.
type Builder struct {
	appID     string
	appSecret []byte
	ttl       time.Duration
	clock     clock.Clock
}

func NewBuilder(appID, appSecret string, ttl time.Duration, clk clock.Clock) *Builder {
	return &Builder{
		appID:     appID,
		appSecret: []byte(appSecret),
		ttl:       ttl,
		clock:     clk,
	}
}

// AppID returns the transport application id the builder signs for
func (b *Builder) AppID() string {
	return b.appID
}

// TTL returns the configured token lifetime
func (b *Builder) TTL() time.Duration {
	return b.ttl
}

// BuildChannelToken mints a signed token authorizing subjectID to join the
// given channel with the given permission, expiring at floor(now) + TTL.
func (b *Builder) BuildChannelToken(channel, subjectID string, permission Permission) (string, error) {
	return b.sign(Claims{
		RegisteredClaims: b.registered(subjectID),
		Channel:          channel,
		Permission:       permission,
		TokenType:        tokenTypeChannel,
	})
}

// BuildMessagingToken mints a signed token authorizing subjectID on the
// companion messaging channel. No channel binding, fixed principal role.
func (b *Builder) BuildMessagingToken(subjectID string) (string, error) {
	return b.sign(Claims{
		RegisteredClaims: b.registered(subjectID),
		Permission:       messagingPrincipal,
		TokenType:        tokenTypeMessaging,
	})
}

func (b *Builder) registered(subjectID string) jwt.RegisteredClaims {
	now := b.clock.Now().Truncate(time.Second)
	return jwt.RegisteredClaims{
		Issuer:    b.appID,
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(b.ttl)),
	}
}

func (b *Builder) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.appSecret)
}
