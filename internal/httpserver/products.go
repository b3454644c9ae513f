package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sportmarket/internal/catalog"
	"sportmarket/internal/domain"
	"sportmarket/internal/sports"
)

type productListResponse struct {
	Count   int              `json:"count"`
	Results []domain.Product `json:"results"`
}

type productDetailResponse struct {
	ID      int             `json:"id"`
	Product *domain.Product `json:"product,omitempty"`
	domain.ProductDetail
	Discount int64    `json:"discount"`
	Sizes    []string `json:"sizes"`
}

func listProductsHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := catalog.Filter{
			Categories: queryList(c, "category"),
			Colors:     queryList(c, "color"),
			Sort:       c.Query("sort"),
		}
		switch f.Sort {
		case catalog.SortDefault, catalog.SortName, catalog.SortPriceAsc, catalog.SortPriceDesc:
		default:
			badRequest(c, "unknown sort "+strconv.Quote(f.Sort))
			return
		}
		for _, raw := range queryList(c, "price") {
			r, err := catalog.ParsePriceRange(raw)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			f.PriceRanges = append(f.PriceRanges, r)
		}

		results := cat.List(f)
		c.JSON(http.StatusOK, productListResponse{Count: len(results), Results: results})
	}
}

// productDetailHandler never 404s for a well-formed id: unknown ids get the default detail.
func productDetailHandler(cat ProductCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		d := cat.Detail(id)
		resp := productDetailResponse{ID: id, ProductDetail: d, Discount: d.Discount(), Sizes: catalog.Sizes}
		if p, ok := cat.Product(id); ok {
			resp.Product = &p
			resp.Sizes = p.Sizes
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listServicesHandler(c *gin.Context) {
	all := sports.All()
	c.JSON(http.StatusOK, gin.H{"count": len(all), "results": all})
}

func getServiceHandler(c *gin.Context) {
	cat, err := sports.Get(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// queryList accepts both repeated keys and comma-separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, strings.ToLower(part))
			}
		}
	}
	return out
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
