package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/validation"
)

// moderationService is the concrete implementation of ModerationService.
// Every transition is validated before the record is touched, and any status
// may move to any other status, including itself.
type moderationService struct {
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	reviews   repository.ReviewRepository
	sanitizer *validation.Sanitizer
	listings  *listingCache
	log       zerolog.Logger
}

func newModerationService(repos *repository.Repositories, sanitizer *validation.Sanitizer, listings *listingCache, log zerolog.Logger) *moderationService {
	return &moderationService{
		articles:  repos.Article,
		comments:  repos.Comment,
		reviews:   repos.Review,
		sanitizer: sanitizer,
		listings:  listings,
		log:       log.With().Str("service", "moderation").Logger(),
	}
}

// SubmitComment stores a visitor comment on a published article as pending
func (s *moderationService) SubmitComment(ctx context.Context, articleID string, in *models.CommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentInput(in); err != nil {
		return nil, err
	}

	content := s.sanitizer.Plain(in.Content)
	if content == "" {
		return nil, apperror.InvalidInput("validation failed", map[string]string{"content": "cannot be blank"})
	}

	if !isID(articleID) {
		return nil, apperror.NotFound("article")
	}
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, storeError(s.log, "article", "get article", err)
	}
	if article == nil || article.Status != models.StatusPublished {
		return nil, apperror.NotFound("article")
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:          uuid.New().String(),
		ArticleID:   article.ID,
		AuthorName:  s.sanitizer.Plain(in.AuthorName),
		AuthorEmail: strings.ToLower(strings.TrimSpace(in.AuthorEmail)),
		Content:     content,
		Status:      models.CommentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeError(s.log, "comment", "create comment", err)
	}

	s.log.Info().Str("comment_id", comment.ID).Str("article_id", article.ID).Msg("Comment submitted for moderation")
	return comment, nil
}

// ApprovedComments lists the comments shown publicly under an article
func (s *moderationService) ApprovedComments(ctx context.Context, articleID string, limit, offset int) (*models.Page[models.Comment], error) {
	if !isID(articleID) {
		return nil, apperror.NotFound("article")
	}
	approved := models.CommentApproved
	filter := models.CommentFilter{ArticleID: articleID, Status: &approved}
	filter.Limit, filter.Offset = window(limit, offset)

	key := cacheKey("article", articleID, filter.Limit, filter.Offset)
	var page models.Page[models.Comment]
	at, hit := s.listings.get(ctx, cache.NamespaceComments, key, &page)
	if hit {
		return &page, nil
	}

	comments, total, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "comment", "list comments", err)
	}
	result := newPage(comments, total, filter.Limit, filter.Offset)
	s.listings.set(ctx, cache.NamespaceComments, at, key, result)
	return result, nil
}

// ListComments lists comments for moderators, optionally by article and status
func (s *moderationService) ListComments(ctx context.Context, articleID, status string, limit, offset int) (*models.Page[models.Comment], error) {
	statusFilter, err := enumFilter(status, models.ValidCommentStatuses)
	if err != nil {
		return nil, err
	}
	if articleID != "" && !isID(articleID) {
		return nil, apperror.InvalidInput("validation failed", map[string]string{"articleId": "must be a valid UUID"})
	}

	filter := models.CommentFilter{ArticleID: articleID, Status: statusFilter}
	filter.Limit, filter.Offset = window(limit, offset)

	comments, total, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "comment", "list comments", err)
	}
	return newPage(comments, total, filter.Limit, filter.Offset), nil
}

// ModerateComment moves a comment to the requested status
func (s *moderationService) ModerateComment(ctx context.Context, id string, m *models.CommentModeration) (*models.Comment, error) {
	if err := validation.ValidateCommentModeration(m); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, apperror.NotFound("comment")
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "comment", "get comment", err)
	}
	if comment == nil {
		return nil, apperror.NotFound("comment")
	}

	previous := comment.Status
	comment.Status = models.CommentStatus(m.Status)
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.UpdateStatus(ctx, comment.ID, comment.Status, comment.UpdatedAt); err != nil {
		return nil, storeError(s.log, "comment", "update comment", err)
	}

	metrics.ModerationTransitions.WithLabelValues("comment", string(comment.Status)).Inc()
	s.listings.invalidate(ctx, cache.NamespaceComments)
	s.log.Info().
		Str("comment_id", comment.ID).
		Str("from", string(previous)).
		Str("to", string(comment.Status)).
		Msg("Comment moderated")
	return comment, nil
}

// DeleteComment removes a comment
func (s *moderationService) DeleteComment(ctx context.Context, id string) error {
	if !isID(id) {
		return apperror.NotFound("comment")
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return storeError(s.log, "comment", "delete comment", err)
	}
	s.listings.invalidate(ctx, cache.NamespaceComments)
	s.log.Info().Str("comment_id", id).Msg("Comment deleted")
	return nil
}

// SubmitReview stores a visitor review as pending and not featured
func (s *moderationService) SubmitReview(ctx context.Context, in *models.ReviewInput) (*models.Review, error) {
	if err := validation.ValidateReviewInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &models.Review{
		ID:              uuid.New().String(),
		Title:           s.sanitizer.Plain(in.Title),
		Content:         s.sanitizer.Plain(in.Content),
		Rating:          in.Rating,
		Status:          models.ReviewPending,
		AuthorName:      s.sanitizer.Plain(in.AuthorName),
		AuthorTitle:     s.sanitizer.Plain(in.AuthorTitle),
		AuthorCompany:   s.sanitizer.Plain(in.AuthorCompany),
		AuthorAvatarURL: strings.TrimSpace(in.AuthorAvatarURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if review.Title == "" || review.Content == "" || review.AuthorName == "" {
		return nil, apperror.InvalidInput("validation failed", map[string]string{"content": "cannot be blank"})
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, storeError(s.log, "review", "create review", err)
	}

	s.log.Info().Str("review_id", review.ID).Int("rating", review.Rating).Msg("Review submitted for moderation")
	return review, nil
}

// PublicReviews lists approved reviews, featured first
func (s *moderationService) PublicReviews(ctx context.Context, featured *bool, limit, offset int) (*models.Page[models.Review], error) {
	approved := models.ReviewApproved
	filter := models.ReviewFilter{Status: &approved, Featured: featured}
	filter.Limit, filter.Offset = window(limit, offset)

	key := cacheKey("public", filter.Limit, filter.Offset, featured)
	var page models.Page[models.Review]
	at, hit := s.listings.get(ctx, cache.NamespaceReviews, key, &page)
	if hit {
		return &page, nil
	}

	reviews, total, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "review", "list reviews", err)
	}
	result := newPage(reviews, total, filter.Limit, filter.Offset)
	s.listings.set(ctx, cache.NamespaceReviews, at, key, result)
	return result, nil
}

// ListReviews lists reviews for moderators
func (s *moderationService) ListReviews(ctx context.Context, status string, limit, offset int) (*models.Page[models.Review], error) {
	statusFilter, err := enumFilter(status, models.ValidReviewStatuses)
	if err != nil {
		return nil, err
	}

	filter := models.ReviewFilter{Status: statusFilter}
	filter.Limit, filter.Offset = window(limit, offset)

	reviews, total, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "review", "list reviews", err)
	}
	return newPage(reviews, total, filter.Limit, filter.Offset), nil
}

// ModerateReview changes a review's status and/or featured flag. Rejecting a
// review always clears featured, and a rejected review cannot be featured.
func (s *moderationService) ModerateReview(ctx context.Context, id string, m *models.ReviewModeration) (*models.Review, error) {
	if err := validation.ValidateReviewModeration(m); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, apperror.NotFound("review")
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "review", "get review", err)
	}
	if review == nil {
		return nil, apperror.NotFound("review")
	}

	previous := review.Status
	next := previous
	if m.Status != nil {
		next = models.ReviewStatus(*m.Status)
	}
	if next == models.ReviewRejected && m.Featured != nil && *m.Featured {
		return nil, apperror.InvalidInput("validation failed", map[string]string{"featured": "a rejected review cannot be featured"})
	}

	review.Status = next
	if m.Featured != nil {
		review.Featured = *m.Featured
	}
	if review.Status == models.ReviewRejected {
		review.Featured = false
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, storeError(s.log, "review", "update review", err)
	}

	if m.Status != nil {
		metrics.ModerationTransitions.WithLabelValues("review", string(review.Status)).Inc()
	}
	s.listings.invalidate(ctx, cache.NamespaceReviews)
	s.log.Info().
		Str("review_id", review.ID).
		Str("from", string(previous)).
		Str("to", string(review.Status)).
		Bool("featured", review.Featured).
		Msg("Review moderated")
	return review, nil
}

// DeleteReview removes a review
func (s *moderationService) DeleteReview(ctx context.Context, id string) error {
	if !isID(id) {
		return apperror.NotFound("review")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return storeError(s.log, "review", "delete review", err)
	}
	s.listings.invalidate(ctx, cache.NamespaceReviews)
	s.log.Info().Str("review_id", id).Msg("Review deleted")
	return nil
}
