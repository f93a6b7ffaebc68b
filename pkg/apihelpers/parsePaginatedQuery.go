package apihelpers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const MAX_PAGE_SIZE = 200

type PaginatedQuery struct {
	Page   int64
	Limit  int64
	Sort   bson.M
	Filter bson.M
}

// ParsePaginatedQueryFromCtx reads page, limit, sort and filter from the
// query string. Sort and filter are JSON objects passed through to the
// database query.
func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid page value: %w", err)
	}
	if page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid limit value: %w", err)
	}
	if limit < 1 {
		limit = 1
	} else if limit > MAX_PAGE_SIZE {
		limit = MAX_PAGE_SIZE
	}

	sort := bson.M{}
	if sortStr := c.Query("sort"); sortStr != "" {
		if err := json.Unmarshal([]byte(sortStr), &sort); err != nil {
			return nil, fmt.Errorf("invalid sort value: %w", err)
		}
	}

	filter := bson.M{}
	if filterStr := c.Query("filter"); filterStr != "" {
		if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
			return nil, fmt.Errorf("invalid filter value: %w", err)
		}
	}

	return &PaginatedQuery{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Filter: filter,
	}, nil
}
