package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

func (s *Server) listBlogPosts(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	posts, err := s.contentSvc.ListBlogPosts(c.Request().Context(), api, pageParam(c), 0)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "blog", "Blog", posts)
}

func (s *Server) showBlogPost(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	post, err := s.contentSvc.GetBlogPost(c.Request().Context(), api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "blog_post", post.Title, post)
}

func (s *Server) listSolutions(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	solutions, err := s.contentSvc.ListSolutions(c.Request().Context(), api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "solutions", "Solutions", solutions)
}

func (s *Server) showSolution(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	solution, err := s.contentSvc.GetSolution(c.Request().Context(), api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "solution", solution.Title, solution)
}

func (s *Server) showPage(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	page, err := s.contentSvc.GetPage(c.Request().Context(), api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	title := page.MetaTitle
	if title == "" {
		title = page.Title
	}
	return s.render(c, "page", title, page)
}
