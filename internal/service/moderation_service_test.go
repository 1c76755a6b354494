package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/mocks"
	"github.com/tech-hub-api/internal/models"
)

const publishedArticle = "b2000000-0000-4000-8000-000000000001"

func TestModeration_SpamCommentLeavesPendingQueue(t *testing.T) {
	f := newFixture(t)
	f.seedArticle(publishedArticle, "Observability 101", "cloud", models.StatusPublished, day)
	ctx := context.Background()

	comment, err := f.svc.Moderation.SubmitComment(ctx, publishedArticle, &models.CommentInput{
		AuthorName:  "Ada",
		AuthorEmail: "Ada@Example.com",
		Content:     "<b>Buy</b> cheap watches",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommentPending, comment.Status)
	assert.Equal(t, "Buy cheap watches", comment.Content)
	assert.Equal(t, "ada@example.com", comment.AuthorEmail)

	pending, err := f.svc.Moderation.ListComments(ctx, "", "pending", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Meta.Total)

	moved, err := f.svc.Moderation.ModerateComment(ctx, comment.ID, &models.CommentModeration{Status: "spam"})
	require.NoError(t, err)
	assert.Equal(t, models.CommentSpam, moved.Status)

	pending, err = f.svc.Moderation.ListComments(ctx, publishedArticle, "pending", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Meta.Total)
	assert.Empty(t, pending.Items)

	public, err := f.svc.Moderation.ApprovedComments(ctx, publishedArticle, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, public.Items)
}

func TestModeration_CommentTransitionsAreTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	statuses := []models.CommentStatus{models.CommentPending, models.CommentApproved, models.CommentRejected, models.CommentSpam}
	old := time.Now().UTC().Add(-time.Hour)

	for _, from := range statuses {
		for _, to := range statuses {
			id := "c3000000-0000-4000-8000-000000000001"
			f.comments().Comments[id] = &models.Comment{
				ID:        id,
				ArticleID: publishedArticle,
				Content:   "hello",
				Status:    from,
				CreatedAt: old,
				UpdatedAt: old,
			}

			moved, err := f.svc.Moderation.ModerateComment(ctx, id, &models.CommentModeration{Status: string(to)})
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, moved.Status)
			assert.True(t, moved.UpdatedAt.After(old))
			assert.Equal(t, to, f.comments().Comments[id].Status)
		}
	}
}

func TestModeration_CommentErrors(t *testing.T) {
	f := newFixture(t)
	f.seedArticle(publishedArticle, "Observability 101", "cloud", models.StatusPublished, day)
	f.seedArticle("b2000000-0000-4000-8000-000000000002", "Draft", "cloud", models.StatusDraft, day)
	ctx := context.Background()

	_, err := f.svc.Moderation.SubmitComment(ctx, "b2000000-0000-4000-8000-000000000002", &models.CommentInput{Content: "hi"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "drafts do not accept comments")

	_, err = f.svc.Moderation.SubmitComment(ctx, publishedArticle, &models.CommentInput{Content: "<script></script>"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = f.svc.Moderation.ModerateComment(ctx, "c3000000-0000-4000-8000-00000000dead", &models.CommentModeration{Status: "approved"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.Moderation.ModerateComment(ctx, "c3000000-0000-4000-8000-00000000dead", &models.CommentModeration{Status: "hidden"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput), "status is validated before lookup")

	_, err = f.svc.Moderation.ListComments(ctx, "", "hidden", 0, 0)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestModeration_ApprovedCommentsArePublic(t *testing.T) {
	f := newFixture(t)
	f.seedArticle(publishedArticle, "Observability 101", "cloud", models.StatusPublished, day)
	ctx := context.Background()

	for _, text := range []string{"first", "second"} {
		c, err := f.svc.Moderation.SubmitComment(ctx, publishedArticle, &models.CommentInput{Content: text})
		require.NoError(t, err)
		if text == "first" {
			_, err = f.svc.Moderation.ModerateComment(ctx, c.ID, &models.CommentModeration{Status: "approved"})
			require.NoError(t, err)
		}
	}

	page, err := f.svc.Moderation.ApprovedComments(ctx, publishedArticle, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "first", page.Items[0].Content)
}

func submitReview(t *testing.T, f *fixture) *models.Review {
	t.Helper()
	review, err := f.svc.Moderation.SubmitReview(context.Background(), &models.ReviewInput{
		Title:      "Great community",
		Content:    "Learned a lot from the meetups",
		Rating:     5,
		AuthorName: "Grace",
	})
	require.NoError(t, err)
	return review
}

func TestModeration_ReviewRejectionClearsFeatured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	review := submitReview(t, f)
	assert.Equal(t, models.ReviewPending, review.Status)
	assert.False(t, review.Featured)

	approved, err := f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{
		Status:   strPtr("approved"),
		Featured: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, approved.Featured)

	rejected, err := f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{Status: strPtr("rejected")})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewRejected, rejected.Status)
	assert.False(t, rejected.Featured)

	unfeatured, err := f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{Featured: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, unfeatured.Featured)
}

func TestModeration_RejectedReviewCannotBeFeatured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	review := submitReview(t, f)
	_, err := f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{Status: strPtr("rejected")})
	require.NoError(t, err)

	_, err = f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{Featured: boolPtr(true)})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{
		Status:   strPtr("rejected"),
		Featured: boolPtr(true),
	})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	// refused requests leave the stored review untouched
	stored := f.repos.Review.(*mocks.MockReviewRepository).Reviews[review.ID]
	assert.Equal(t, models.ReviewRejected, stored.Status)
	assert.False(t, stored.Featured)

	// featuring together with approval is a valid move out of rejected
	approved, err := f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{
		Status:   strPtr("approved"),
		Featured: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, approved.Status)
	assert.True(t, approved.Featured)
}

func TestModeration_PublicReviewsOnlyApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := submitReview(t, f)
	submitReview(t, f)

	_, err := f.svc.Moderation.ModerateReview(ctx, first.ID, &models.ReviewModeration{Status: strPtr("approved")})
	require.NoError(t, err)

	page, err := f.svc.Moderation.PublicReviews(ctx, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, first.ID, page.Items[0].ID)

	featured, err := f.svc.Moderation.PublicReviews(ctx, boolPtr(true), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, featured.Items)

	pending, err := f.svc.Moderation.ListReviews(ctx, "pending", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Meta.Total)
}

func TestModeration_ReviewValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Moderation.SubmitReview(ctx, &models.ReviewInput{Title: "t", Content: "c", Rating: 6, AuthorName: "a"})
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "rating")

	review := submitReview(t, f)
	_, err = f.svc.Moderation.ModerateReview(ctx, review.ID, &models.ReviewModeration{})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	require.NoError(t, f.svc.Moderation.DeleteReview(ctx, review.ID))
	err = f.svc.Moderation.DeleteReview(ctx, review.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
