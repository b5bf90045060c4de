package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/promotion"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const featuredProducts = 8

type homeView struct {
	Featured   []*catalog.Product
	Categories []*catalog.Category
	Promotions []*promotion.Promotion
}

type productListView struct {
	Query   catalog.ProductQuery
	Page    *catalog.ProductPage
	Heading string
}

func (s *Server) home(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	featured, err := s.catalogSvc.ListProducts(ctx, api, catalog.ProductQuery{Featured: true, PerPage: featuredProducts})
	if err != nil {
		return s.upstreamError(c, err)
	}
	view := homeView{Featured: featured.Items}

	// Side panels degrade to empty rather than failing the homepage.
	if view.Categories, err = s.catalogSvc.ListCategories(ctx, api); err != nil {
		s.logPanelFailure(c, "categories", err)
	}
	if s.promotionSvc != nil {
		if view.Promotions, err = s.promotionSvc.ListActive(ctx, api); err != nil {
			s.logPanelFailure(c, "promotions", err)
		}
	}
	return s.render(c, "home", "", view)
}

func (s *Server) listProducts(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	q := productQuery(c)
	page, err := s.catalogSvc.ListProducts(c.Request().Context(), api, q)
	if err != nil {
		return s.upstreamError(c, err)
	}
	title := "Products"
	if q.Search != "" {
		title = "Search results for " + q.Search
	}
	return s.render(c, "products", title, productListView{Query: q, Page: page})
}

func (s *Server) showProduct(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	product, err := s.catalogSvc.GetProduct(c.Request().Context(), api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "product", product.Name, product)
}

func (s *Server) showCategory(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	category, err := s.catalogSvc.GetCategory(ctx, api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	q := productQuery(c)
	q.Category = category.Slug
	page, err := s.catalogSvc.ListProducts(ctx, api, q)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "products", category.Name, productListView{Query: q, Page: page, Heading: category.Description})
}

func (s *Server) listBrands(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	brands, err := s.catalogSvc.ListBrands(c.Request().Context(), api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "brands", "Brands", brands)
}

func (s *Server) showBrand(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	brand, err := s.catalogSvc.GetBrand(ctx, api, c.Param("slug"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	q := productQuery(c)
	q.Brand = brand.Slug
	page, err := s.catalogSvc.ListProducts(ctx, api, q)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "products", brand.Name, productListView{Query: q, Page: page, Heading: brand.Description})
}

func (s *Server) listPromotions(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	promos, err := s.promotionSvc.ListActive(c.Request().Context(), api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "promotions", "Promotions", promos)
}

// productQuery reads listing filters from the query string. The page size is
// fixed server side.
func productQuery(c echo.Context) catalog.ProductQuery {
	return catalog.ProductQuery{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Brand:    c.QueryParam("brand"),
		Sort:     catalog.ProductSort(c.QueryParam("sort")),
		Page:     pageParam(c),
	}
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) logPanelFailure(c echo.Context, panel string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(logrus.Fields{
		"path":  c.Request().URL.Path,
		"panel": panel,
	}).WithError(err).Warn("optional page section unavailable")
}
