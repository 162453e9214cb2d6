package service

import (
	"context"
	"errors"

	"github.com/andressep95/session-service/internal/domain"
	"github.com/andressep95/session-service/internal/repository"
	"github.com/andressep95/session-service/pkg/rtctoken"
)

// TokenGrant is everything a participant needs to join a session through the
// real-time transport.
type TokenGrant struct {
	AppID          string               `json:"app_id"`
	Channel        string               `json:"channel"`
	SubjectID      string               `json:"subject_id"`
	Role           domain.CallRole      `json:"role"`
	Permission     rtctoken.Permission  `json:"permission"`
	ChannelToken   string               `json:"channel_token"`
	MessagingToken string               `json:"messaging_token"`
	Status         domain.SessionStatus `json:"session_status"`
}

// TokenService translates "subject S wants to join session P as role R" into
// transport-ready credentials. It never writes session state; issuance is
// safe to call any number of times, including while the session is still
// SCHEDULED so participants can wait in the lobby before the host starts.
type TokenService struct {
	sessionRepo repository.SessionRepository
	builder     *rtctoken.Builder
}

func NewTokenService(sessionRepo repository.SessionRepository, builder *rtctoken.Builder) *TokenService {
	return &TokenService{
		sessionRepo: sessionRepo,
		builder:     builder,
	}
}

// PermissionForRole maps a call role to its transport permission. Host
// publishes, everything else (including the empty default) subscribes.
func PermissionForRole(role domain.CallRole) rtctoken.Permission {
	if role == domain.CallRoleHost {
		return rtctoken.PermissionPublisher
	}
	return rtctoken.PermissionSubscriber
}

// IssueTokens mints a fresh channel token and messaging token for a subject.
// Tokens are never cached or reused; every call produces a new pair expiring
// at now + the configured TTL.
func (s *TokenService) IssueTokens(ctx context.Context, publicID, subjectID string, role domain.CallRole) (*TokenGrant, error) {
	session, err := s.sessionRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if role == "" {
		role = domain.CallRoleAudience
	}
	permission := PermissionForRole(role)

	channelToken, err := s.builder.BuildChannelToken(session.Channel, subjectID, permission)
	if err != nil {
		return nil, err
	}
	messagingToken, err := s.builder.BuildMessagingToken(subjectID)
	if err != nil {
		return nil, err
	}

	return &TokenGrant{
		AppID:          s.builder.AppID(),
		Channel:        session.Channel,
		SubjectID:      subjectID,
		Role:           role,
		Permission:     permission,
		ChannelToken:   channelToken,
		MessagingToken: messagingToken,
		Status:         session.Status,
	}, nil
}
