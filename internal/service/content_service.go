package service

import (
	"context"
	"fmt"

	"github.com/makkenzo/wedding-invitation-api/internal/domain/invitation"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"go.uber.org/zap"
)

type ContentService struct {
	repo   invitation.ContentRepository
	logger *zap.Logger
}

func NewContentService(repo invitation.ContentRepository, logger *zap.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		logger: logger.Named("ContentService"),
	}
}

// GetDearBlock returns ierr.ErrNotFound when the block is absent or has no message.
func (s *ContentService) GetDearBlock(ctx context.Context, invitationID, queryDraftKey string, session draftmode.Session) (*invitation.DearBlock, error) {
	draftKey := session.EffectiveDraftKey(queryDraftKey)
	s.logger.Debug("Fetching dear block", zap.String("invitation_id", invitationID), zap.Bool("draft", draftKey != ""))

	block, err := s.repo.FetchDearBlock(ctx, invitationID, draftKey)
	if err != nil {
		return nil, fmt.Errorf("fetch dear block %q: %w", invitationID, err)
	}
	if !block.Found() {
		return nil, fmt.Errorf("dear block %q: %w", invitationID, ierr.ErrNotFound)
	}

	return block, nil
}

// GetInvitation returns ierr.ErrNotFound when the CMS has no such invitation.
func (s *ContentService) GetInvitation(ctx context.Context, invitationID, queryDraftKey string, session draftmode.Session) (*invitation.Invitation, error) {
	draftKey := session.EffectiveDraftKey(queryDraftKey)
	s.logger.Debug("Fetching invitation", zap.String("invitation_id", invitationID), zap.Bool("draft", draftKey != ""))

	inv, err := s.repo.FetchInvitation(ctx, invitationID, draftKey)
	if err != nil {
		return nil, fmt.Errorf("fetch invitation %q: %w", invitationID, err)
	}
	if !inv.Found() {
		return nil, fmt.Errorf("invitation %q: %w", invitationID, ierr.ErrNotFound)
	}

	return inv, nil
}
