package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"nutrirec-web/models"
)

// FoodService covers the food catalog and ratings
type FoodService struct {
	c *Client
}

// List returns one page of the catalog
func (s *FoodService) List(ctx context.Context, p models.FoodSearchParams) (*models.FoodsResponse, error) {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "per_page", p.PerPage)
	setInt(q, "category_id", p.CategoryID)
	if p.Search != "" {
		q.Set("search", p.Search)
	}

	var out models.FoodsResponse
	if err := s.c.Get(ctx, "/foods/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single food
func (s *FoodService) Get(ctx context.Context, id int) (*models.Food, error) {
	var out models.FoodResponse
	if err := s.c.Get(ctx, fmt.Sprintf("/foods/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Food, nil
}

// Categories lists the food categories
func (s *FoodService) Categories(ctx context.Context) ([]models.FoodCategory, error) {
	var out models.CategoriesResponse
	if err := s.c.Get(ctx, "/foods/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Rate stores the current user's rating of a food
func (s *FoodService) Rate(ctx context.Context, id int, req models.RatingRequest) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := s.c.Post(ctx, fmt.Sprintf("/foods/%d/rate", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyRatings lists every rating of the current user
func (s *FoodService) MyRatings(ctx context.Context) ([]models.UserRating, error) {
	var out models.RatingsResponse
	if err := s.c.Get(ctx, "/foods/my-ratings", nil, &out); err != nil {
		return nil, err
	}
	return out.Ratings, nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}
