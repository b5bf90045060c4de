package ports

import (
	"context"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/content"
)

// BlogPage is one page of blog posts.
type BlogPage struct {
	Items []*content.BlogPost `json:"data"`
	Meta  catalog.PageMeta    `json:"meta"`
}

// ContentService reads blog posts, CMS pages and solutions.
type ContentService interface {
	ListBlogPosts(ctx context.Context, api APIClient, page, perPage int) (*BlogPage, error)
	GetBlogPost(ctx context.Context, api APIClient, slug string) (*content.BlogPost, error)
	ListPages(ctx context.Context, api APIClient) ([]*content.Page, error)
	GetPage(ctx context.Context, api APIClient, slug string) (*content.Page, error)
	ListSolutions(ctx context.Context, api APIClient) ([]*content.Solution, error)
	GetSolution(ctx context.Context, api APIClient, slug string) (*content.Solution, error)
}
