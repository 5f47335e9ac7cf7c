package invitation

import "context"

// ContentRepository fetches invitation content from the CMS. A missing record
// is reported as (nil, nil). An empty draftKey requests published content only.
type ContentRepository interface {
	FetchDearBlock(ctx context.Context, invitationID, draftKey string) (*DearBlock, error)
	FetchInvitation(ctx context.Context, invitationID, draftKey string) (*Invitation, error)
}
