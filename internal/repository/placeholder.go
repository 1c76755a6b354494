package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tech-hub-api/internal/models"
)

// ErrReadOnly is returned by writes against the placeholder catalogue
var ErrReadOnly = errors.New("placeholder catalogue is read-only")

// placeholderArticleRepo serves a fixed catalogue when no database is
// configured. Filtering, ordering and paging follow the Postgres repository.
type placeholderArticleRepo struct {
	mu       sync.RWMutex
	articles []*models.Article
}

// NewPlaceholderArticleRepo creates the read-only placeholder catalogue
func NewPlaceholderArticleRepo() ArticleRepository {
	return &placeholderArticleRepo{articles: placeholderArticles()}
}

func (r *placeholderArticleRepo) Create(ctx context.Context, article *models.Article) error {
	return ErrReadOnly
}

func (r *placeholderArticleRepo) Update(ctx context.Context, article *models.Article) error {
	return ErrReadOnly
}

func (r *placeholderArticleRepo) Delete(ctx context.Context, id string) error {
	return ErrReadOnly
}

func (r *placeholderArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.find(func(a *models.Article) bool { return a.ID == id }), nil
}

func (r *placeholderArticleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.find(func(a *models.Article) bool { return a.Slug == slug }), nil
}

func (r *placeholderArticleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.CategorySlug != "" && filter.CategorySlug != models.AllCategories && a.CategorySlug != filter.CategorySlug {
			continue
		}
		if !a.Matches(filter.Search) {
			continue
		}
		copied := *a
		matched = append(matched, &copied)
	}
	models.SortArticles(matched)

	total := len(matched)
	if filter.Offset < 0 || filter.Offset >= total {
		return []*models.Article{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Limit < total-filter.Offset {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], total, nil
}

// IncrementViews counts in memory; counts reset on restart
func (r *placeholderArticleRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.ID == id {
			a.Views++
			return nil
		}
	}
	return ErrNotFound
}

func (r *placeholderArticleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	a := r.find(func(a *models.Article) bool { return a.Slug == slug && a.ID != excludeID })
	return a != nil, nil
}

func (r *placeholderArticleRepo) CountByStatus(ctx context.Context) (map[models.PublicationStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[models.PublicationStatus]int{
		models.StatusDraft:     0,
		models.StatusPublished: 0,
		models.StatusArchived:  0,
	}
	for _, a := range r.articles {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *placeholderArticleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.articles {
		copied := *a
		if err := callback(&copied); err != nil {
			return err
		}
	}
	return nil
}

func (r *placeholderArticleRepo) find(match func(*models.Article) bool) *models.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.articles {
		if match(a) {
			copied := *a
			return &copied
		}
	}
	return nil
}

func placeholderArticles() []*models.Article {
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	entries := []struct {
		id, title, slug, category, excerpt string
		tags                               []string
	}{
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a01", "Getting Started with Cloud-Native Development", "getting-started-with-cloud-native-development", "cloud",
			"Containers, orchestration and the habits that make services easy to run.",
			[]string{"cloud", "kubernetes", "devops"},
		},
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a02", "What Large Language Models Mean for Small Teams", "what-large-language-models-mean-for-small-teams", "ai",
			"Practical ways small engineering teams are putting LLMs to work.",
			[]string{"ai", "llm"},
		},
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a03", "A Field Guide to Zero-Trust Security", "a-field-guide-to-zero-trust-security", "security",
			"Identity-first access control without the buzzwords.",
			[]string{"security", "identity"},
		},
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a04", "Building a Tech Career in Emerging Markets", "building-a-tech-career-in-emerging-markets", "careers",
			"Remote work, communities and the skills employers keep asking for.",
			[]string{"careers", "community"},
		},
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a05", "Choosing a Database for Your Next Project", "choosing-a-database-for-your-next-project", "cloud",
			"Relational, document or key-value: matching the store to the workload.",
			[]string{"databases", "postgres"},
		},
		{
			"5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a06", "Fintech APIs Every Developer Should Know", "fintech-apis-every-developer-should-know", "fintech",
			"Payments, identity checks and open banking from a developer's seat.",
			[]string{"fintech", "payments", "api"},
		},
	}

	articles := make([]*models.Article, 0, len(entries))
	for i, e := range entries {
		published := base.AddDate(0, 0, -7*i)
		body := e.excerpt + " This is placeholder content shown while the content store is offline."
		articles = append(articles, &models.Article{
			ID:           e.id,
			Title:        e.title,
			Slug:         e.slug,
			Excerpt:      e.excerpt,
			Content:      body,
			CategorySlug: e.category,
			Tags:         e.tags,
			Status:       models.StatusPublished,
			ReadingTime:  models.ReadingTime(body),
			CreatedAt:    published,
			UpdatedAt:    published,
			PublishedAt:  &published,
		})
	}
	return articles
}
