package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty body floors at one", 0, 1},
		{"single word", 1, 1},
		{"exactly one minute", 200, 1},
		{"one word over", 201, 2},
		{"two and a half minutes", 500, 3},
		{"two hundred fifty words", 250, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("word ", tt.words)
			assert.Equal(t, tt.want, ReadingTime(body))
		})
	}
}

func TestReadingTime_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, ReadingTime("a b c"), ReadingTime("a\n\n  b\t\tc"))
}

func TestArticleSortTime(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	published := created.Add(48 * time.Hour)

	draft := &Article{CreatedAt: created}
	assert.Equal(t, created, draft.SortTime())

	live := &Article{CreatedAt: created, PublishedAt: &published}
	assert.Equal(t, published, live.SortTime())
}

func TestPublicVisibility(t *testing.T) {
	for status := range ValidCommentStatuses {
		c := &Comment{Status: status}
		assert.Equal(t, status == CommentApproved, c.Public(), "comment %s", status)
	}
	for status := range ValidReviewStatuses {
		r := &Review{Status: status, Featured: true}
		assert.Equal(t, status == ReviewApproved, r.Public(), "review %s", status)
	}
}

func TestStatusActions(t *testing.T) {
	assert.Equal(t, StatusPublished, StatusActions["publish"])
	assert.Equal(t, StatusDraft, StatusActions["unpublish"])
	assert.Equal(t, StatusArchived, StatusActions["archive"])
	_, ok := StatusActions["delete"]
	assert.False(t, ok)
}
