package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/derive"
)

// Query parameters shared by list views
const (
	paramSearch      = "q"
	paramSort        = "sort"
	paramPage        = "page"
	paramFingerprint = "fp"
)

// listInputs reads the search, sort and page parameters plus the named
// filters from the query string
func listInputs(c *gin.Context, filters ...string) derive.Inputs {
	in := derive.Inputs{
		Search:  strings.TrimSpace(c.Query(paramSearch)),
		Sort:    c.Query(paramSort),
		Page:    pageParam(c),
		Seen:    c.Query(paramFingerprint),
		Filters: make(map[string]string, len(filters)),
	}
	for _, name := range filters {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			in.Filters[name] = v
		}
	}
	return in
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query(paramPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
