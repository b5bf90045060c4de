package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/avatarctic/storefront/internal/core/domain/content"
	"github.com/avatarctic/storefront/internal/core/ports"
)

type ContentService struct{}

func NewContentService() *ContentService { return &ContentService{} }

func (s *ContentService) ListBlogPosts(ctx context.Context, api ports.APIClient, page, perPage int) (*ports.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 12
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	var out ports.BlogPage
	if _, err := api.Get(ctx, withQuery("/blog/posts", q), &out); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	if out.Meta.Page == 0 {
		out.Meta.Page = page
	}
	if out.Meta.PerPage == 0 {
		out.Meta.PerPage = perPage
	}
	return &out, nil
}

func (s *ContentService) GetBlogPost(ctx context.Context, api ports.APIClient, slug string) (*content.BlogPost, error) {
	p, err := getData[*content.BlogPost](ctx, api, resourcePath("/blog/posts", slug))
	if err != nil {
		return nil, fmt.Errorf("get blog post %q: %w", slug, err)
	}
	return p, nil
}

func (s *ContentService) ListPages(ctx context.Context, api ports.APIClient) ([]*content.Page, error) {
	pages, err := getData[[]*content.Page](ctx, api, "/pages")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

func (s *ContentService) GetPage(ctx context.Context, api ports.APIClient, slug string) (*content.Page, error) {
	p, err := getData[*content.Page](ctx, api, resourcePath("/pages", slug))
	if err != nil {
		return nil, fmt.Errorf("get page %q: %w", slug, err)
	}
	return p, nil
}

func (s *ContentService) ListSolutions(ctx context.Context, api ports.APIClient) ([]*content.Solution, error) {
	sols, err := getData[[]*content.Solution](ctx, api, "/solutions")
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	return sols, nil
}

func (s *ContentService) GetSolution(ctx context.Context, api ports.APIClient, slug string) (*content.Solution, error) {
	sol, err := getData[*content.Solution](ctx, api, resourcePath("/solutions", slug))
	if err != nil {
		return nil, fmt.Errorf("get solution %q: %w", slug, err)
	}
	return sol, nil
}
