package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.ContentRepository    = (*MockContentRepository)(nil)
	_ repository.ArticleRepository    = (*MockArticleRepository)(nil)
	_ repository.CommentRepository    = (*MockCommentRepository)(nil)
	_ repository.ReviewRepository     = (*MockReviewRepository)(nil)
	_ repository.CategoryRepository   = (*MockCategoryRepository)(nil)
	_ repository.SubscriberRepository = (*MockSubscriberRepository)(nil)
	_ repository.ContactRepository    = (*MockContactRepository)(nil)
	_ repository.AuthorRepository     = (*MockAuthorRepository)(nil)
)

// NewRepositories returns a Repositories bundle backed entirely by fresh mocks
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Content:    NewMockContentRepository(),
		Article:    NewMockArticleRepository(),
		Comment:    NewMockCommentRepository(),
		Review:     NewMockReviewRepository(),
		Category:   NewMockCategoryRepository(),
		Subscriber: NewMockSubscriberRepository(),
		Contact:    NewMockContactRepository(),
		Author:     NewMockAuthorRepository(),
	}
}

func window[T any](items []*T, limit, offset int) []*T {
	if offset < 0 || offset >= len(items) {
		return []*T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mu          sync.Mutex
	Items       map[string]*models.Content
	InsertError error
	ListError   error
	UpdateCalls int
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{Items: make(map[string]*models.Content)}
}

func (m *MockContentRepository) Create(ctx context.Context, c *models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	for _, existing := range m.Items {
		if existing.Type == c.Type && existing.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	stored := *c
	m.Items[c.ID] = &stored
	return nil
}

func (m *MockContentRepository) Update(ctx context.Context, c *models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if _, ok := m.Items[c.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range m.Items {
		if id != c.ID && existing.Type == c.Type && existing.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	stored := *c
	m.Items[c.ID] = &stored
	return nil
}

func (m *MockContentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Items, id)
	return nil
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Items[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockContentRepository) GetBySlug(ctx context.Context, slug string, contentType *models.ContentType) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Content
	for _, c := range m.Items {
		if c.Slug != slug || (contentType != nil && c.Type != *contentType) {
			continue
		}
		if found == nil || c.CreatedAt.After(found.CreatedAt) {
			found = c
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

func (m *MockContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	matched := make([]*models.Content, 0, len(m.Items))
	for _, c := range m.Items {
		if filter.Type != nil && c.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.IsFeatured != nil && c.IsFeatured != *filter.IsFeatured {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockContentRepository) SlugExists(ctx context.Context, contentType models.ContentType, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Items {
		if id != excludeID && c.Type == contentType && c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockContentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mu             sync.Mutex
	Articles       map[string]*models.Article
	InsertError    error
	ListError      error
	IncrementError error
	IncrementCalls int
	ListCalls      int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) Create(ctx context.Context, a *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	for _, existing := range m.Articles {
		if existing.Slug == a.Slug {
			return repository.ErrConflict
		}
	}
	stored := *a
	m.Articles[a.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, a *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Articles[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range m.Articles {
		if id != a.ID && other.Slug == a.Slug {
			return repository.ErrConflict
		}
	}
	stored := *a
	stored.Views = existing.Views
	m.Articles[a.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Articles {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	matched := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.CategorySlug != "" && filter.CategorySlug != models.AllCategories && a.CategorySlug != filter.CategorySlug {
			continue
		}
		if !a.Matches(filter.Search) {
			continue
		}
		matched = append(matched, a)
	}
	models.SortArticles(matched)
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IncrementCalls++
	if m.IncrementError != nil {
		return m.IncrementError
	}
	a, ok := m.Articles[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Views++
	return nil
}

// Views returns the current view counter of an article
func (m *MockArticleRepository) Views(id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		return a.Views
	}
	return 0
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.Articles {
		if id != excludeID && a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) CountByStatus(ctx context.Context) (map[models.PublicationStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.PublicationStatus]int, len(models.ValidStatuses))
	for status := range models.ValidStatuses {
		counts[status] = 0
	}
	for _, a := range m.Articles {
		counts[a.Status]++
	}
	return counts, nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	m.mu.Lock()
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		articles = append(articles, a)
	}
	m.mu.Unlock()
	sort.Slice(articles, func(i, j int) bool { return articles[i].CreatedAt.Before(articles[j].CreatedAt) })
	for _, a := range articles {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    map[string]*models.Comment
	InsertError error
	UpdateError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *comment
	m.Comments[comment.ID] = &stored
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id string, status models.CommentStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	c, ok := m.Comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Comments, id)
	return nil
}

// DeleteByArticle mirrors the ON DELETE CASCADE foreign key
func (m *MockCommentRepository) DeleteByArticle(articleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Comments {
		if c.ArticleID == articleID {
			delete(m.Comments, id)
		}
	}
}

func (m *MockCommentRepository) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*models.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		if filter.ArticleID != "" && c.ArticleID != filter.ArticleID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockCommentRepository) CountByStatus(ctx context.Context, status models.CommentStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.Comments {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockCommentRepository) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	comments, _, _ := m.List(ctx, models.CommentFilter{})
	for _, c := range comments {
		if err := callback(c); err != nil {
			return err
		}
	}
	return nil
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mu          sync.Mutex
	Reviews     map[string]*models.Review
	InsertError error
	UpdateCalls int
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{Reviews: make(map[string]*models.Review)}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *review
	m.Reviews[review.ID] = &stored
	return nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.Reviews[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if _, ok := m.Reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *review
	m.Reviews[review.ID] = &stored
	return nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Reviews, id)
	return nil
}

func (m *MockReviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*models.Review, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Featured != nil && r.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Featured != matched[j].Featured {
			return matched[i].Featured
		}
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockReviewRepository) CountByStatus(ctx context.Context, status models.ReviewStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, r := range m.Reviews {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[string]*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Categories {
		if existing.Slug == category.Slug {
			return repository.ErrConflict
		}
	}
	stored := *category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, other := range m.Categories {
		if id != category.ID && other.Slug == category.Slug {
			return repository.ErrConflict
		}
	}
	stored := *category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Categories, id)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]*models.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Categories {
		if id != excludeID && c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// MockSubscriberRepository is a mock implementation of SubscriberRepository.
// Create enforces email uniqueness the way the table constraint does.
type MockSubscriberRepository struct {
	mu          sync.Mutex
	Subscribers map[string]*models.Subscriber
	InsertError error
	// BeforeCreate runs ahead of the uniqueness check; tests use it to simulate a racing insert
	BeforeCreate func(s *models.Subscriber)
}

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{Subscribers: make(map[string]*models.Subscriber)}
}

func (m *MockSubscriberRepository) Create(ctx context.Context, s *models.Subscriber) error {
	if m.BeforeCreate != nil {
		m.BeforeCreate(s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	email := strings.ToLower(s.Email)
	for _, existing := range m.Subscribers {
		if existing.Email == email {
			return repository.ErrConflict
		}
	}
	stored := *s
	stored.Email = email
	m.Subscribers[s.ID] = &stored
	return nil
}

func (m *MockSubscriberRepository) Update(ctx context.Context, s *models.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Subscribers[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = s.Name
	existing.Status = s.Status
	existing.Source = s.Source
	existing.UpdatedAt = s.UpdatedAt
	return nil
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(email)
	for _, s := range m.Subscribers {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockSubscriberRepository) List(ctx context.Context, filter models.SubscriberFilter) ([]*models.Subscriber, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*models.Subscriber, 0, len(m.Subscribers))
	for _, s := range m.Subscribers {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockSubscriberRepository) CountByStatus(ctx context.Context, status models.SubscriberStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.Subscribers {
		if s.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockSubscriberRepository) StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error {
	subscribers, _, _ := m.List(ctx, models.SubscriberFilter{})
	for _, s := range subscribers {
		if err := callback(s); err != nil {
			return err
		}
	}
	return nil
}

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mu          sync.Mutex
	Messages    map[string]*models.ContactMessage
	InsertError error
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{Messages: make(map[string]*models.ContactMessage)}
}

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *msg
	m.Messages[msg.ID] = &stored
	return nil
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := m.Messages[id]; ok {
		copied := *msg
		return &copied, nil
	}
	return nil, nil
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.Messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	msg.Status = status
	msg.UpdatedAt = updatedAt
	return nil
}

func (m *MockContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*models.ContactMessage, 0, len(m.Messages))
	for _, msg := range m.Messages {
		if filter.Status != nil && msg.Status != *filter.Status {
			continue
		}
		matched = append(matched, msg)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return window(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockContactRepository) CountByStatus(ctx context.Context, status models.ContactStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, msg := range m.Messages {
		if msg.Status == status {
			count++
		}
	}
	return count, nil
}

// MockAuthorRepository is a mock implementation of AuthorRepository
type MockAuthorRepository struct {
	mu      sync.Mutex
	Authors map[string]*models.Author
}

func NewMockAuthorRepository() *MockAuthorRepository {
	return &MockAuthorRepository{Authors: make(map[string]*models.Author)}
}

func (m *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Authors {
		if strings.EqualFold(existing.Email, author.Email) {
			return repository.ErrConflict
		}
	}
	stored := *author
	m.Authors[author.ID] = &stored
	return nil
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Authors[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (m *MockAuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	authors := make([]*models.Author, 0, len(m.Authors))
	for _, a := range m.Authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return authors, nil
}
