package service

import (
	"context"
	"errors"
	"testing"

	"github.com/makkenzo/wedding-invitation-api/internal/domain/invitation"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContentRepo struct {
	block     *invitation.DearBlock
	inv       *invitation.Invitation
	err       error
	gotID     string
	gotDraft  string
	callCount int
}

func (f *fakeContentRepo) FetchDearBlock(_ context.Context, id, draftKey string) (*invitation.DearBlock, error) {
	f.callCount++
	f.gotID, f.gotDraft = id, draftKey
	return f.block, f.err
}

func (f *fakeContentRepo) FetchInvitation(_ context.Context, id, draftKey string) (*invitation.Invitation, error) {
	f.callCount++
	f.gotID, f.gotDraft = id, draftKey
	return f.inv, f.err
}

func TestGetDearBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &fakeContentRepo{block: &invitation.DearBlock{Dear: "Dear", Message: "hello"}}
		svc := NewContentService(repo, zap.NewNop())

		block, err := svc.GetDearBlock(ctx, "abc", "", draftmode.Session{})
		require.NoError(t, err)
		assert.Equal(t, "hello", block.Message)
		assert.Equal(t, "abc", repo.gotID)
		assert.Empty(t, repo.gotDraft)
	})

	t.Run("draft mode falls back to cookie key", func(t *testing.T) {
		repo := &fakeContentRepo{block: &invitation.DearBlock{Message: "draft"}}
		svc := NewContentService(repo, zap.NewNop())

		_, err := svc.GetDearBlock(ctx, "abc", "", draftmode.Session{Enabled: true, CookieDraftKey: "cookie-key"})
		require.NoError(t, err)
		assert.Equal(t, "cookie-key", repo.gotDraft)
	})

	t.Run("query key ignored outside draft mode", func(t *testing.T) {
		repo := &fakeContentRepo{block: &invitation.DearBlock{Message: "published"}}
		svc := NewContentService(repo, zap.NewNop())

		_, err := svc.GetDearBlock(ctx, "abc", "query-key", draftmode.Session{CookieDraftKey: "cookie-key"})
		require.NoError(t, err)
		assert.Empty(t, repo.gotDraft)
	})

	t.Run("missing record", func(t *testing.T) {
		svc := NewContentService(&fakeContentRepo{}, zap.NewNop())

		_, err := svc.GetDearBlock(ctx, "abc", "", draftmode.Session{})
		assert.ErrorIs(t, err, ierr.ErrNotFound)
	})

	t.Run("empty message", func(t *testing.T) {
		svc := NewContentService(&fakeContentRepo{block: &invitation.DearBlock{Dear: "Dear"}}, zap.NewNop())

		_, err := svc.GetDearBlock(ctx, "abc", "", draftmode.Session{})
		assert.ErrorIs(t, err, ierr.ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		boom := errors.New("boom")
		svc := NewContentService(&fakeContentRepo{err: boom}, zap.NewNop())

		_, err := svc.GetDearBlock(ctx, "abc", "", draftmode.Session{})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ierr.ErrNotFound)
	})
}

func TestGetInvitation(t *testing.T) {
	ctx := context.Background()

	repo := &fakeContentRepo{inv: &invitation.Invitation{ID: "abc"}}
	svc := NewContentService(repo, zap.NewNop())
	inv, err := svc.GetInvitation(ctx, "abc", "qk", draftmode.Session{Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, "abc", inv.ID)
	assert.Equal(t, "qk", repo.gotDraft)

	// A record without a title is still a record.
	svc = NewContentService(&fakeContentRepo{inv: &invitation.Invitation{}}, zap.NewNop())
	_, err = svc.GetInvitation(ctx, "abc", "", draftmode.Session{})
	require.NoError(t, err)

	svc = NewContentService(&fakeContentRepo{}, zap.NewNop())
	_, err = svc.GetInvitation(ctx, "abc", "", draftmode.Session{})
	assert.ErrorIs(t, err, ierr.ErrNotFound)
}
