package article

import (
	"context"
	"regexp"
	"strings"

	"academia/internal/pkg/clock"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

func (s *Service) Create(ctx context.Context, authorID int64, req *CreateRequest) (*Article, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	now := s.clk.Now()
	a := &Article{
		Title:     req.Title,
		Slug:      slug,
		Summary:   req.Summary,
		Body:      req.Body,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Publish {
		a.IsPublished = true
		a.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// GetPublished resolves a public read. Drafts stay invisible to the portal.
func (s *Service) GetPublished(ctx context.Context, id int64) (*Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]*Article, error) {
	return s.repo.ListPublished(ctx, limit, offset)
}

func (s *Service) List(ctx context.Context) ([]*Article, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		a.Title = req.Title
	}
	if req.Summary != nil {
		a.Summary = *req.Summary
	}
	if req.Body != "" {
		a.Body = req.Body
	}
	now := s.clk.Now()
	if req.Publish != nil {
		a.IsPublished = *req.Publish
		if a.IsPublished && a.PublishedAt == nil {
			a.PublishedAt = &now
		}
	}
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
