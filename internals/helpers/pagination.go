package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

var (
	DefaultOpts = Options{DefaultPageSize: 10, MaxPageSize: 100}
	AdminOpts   = Options{DefaultPageSize: 20, MaxPageSize: 100}
)

type Paging struct {
	Page     int
	PageSize int
}

func (p Paging) Limit() int  { return p.PageSize }
func (p Paging) Offset() int { return (p.Page - 1) * p.PageSize }

// ResolvePaging membaca ?page= & ?pageSize= lalu normalisasi (page>=1, 1<=pageSize<=max).
func ResolvePaging(c *fiber.Ctx, opt Options) Paging {
	return NormalizePaging(c.Query("page"), c.Query("pageSize"), opt)
}

func NormalizePaging(pageRaw, sizeRaw string, opt Options) Paging {
	if opt.DefaultPageSize <= 0 {
		opt.DefaultPageSize = 10
	}
	page, err := strconv.Atoi(strings.TrimSpace(pageRaw))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeRaw))
	if err != nil || size < 1 {
		size = opt.DefaultPageSize
	}
	if opt.MaxPageSize > 0 && size > opt.MaxPageSize {
		size = opt.MaxPageSize
	}
	return Paging{Page: page, PageSize: size}
}

// SafeOrderClause: kolom sort hanya dari whitelist, arah hanya asc|desc.
func SafeOrderClause(allowed map[string]string, sortBy, order, defaultKey string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// ParseBool longgar untuk query/form: 1/true/yes/on.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "y":
		return true
	}
	return false
}
