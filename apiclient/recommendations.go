package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"nutrirec-web/models"
)

// RecommendationService covers /recommendations
type RecommendationService struct {
	c *Client
}

func recommendationQuery(p models.RecommendationParams) url.Values {
	q := url.Values{}
	setInt(q, "limit", p.Limit)
	if p.Method != "" {
		q.Set("method", string(p.Method))
	}
	return q
}

// Smart lets the API pick the method for the user
func (s *RecommendationService) Smart(ctx context.Context, p models.RecommendationParams) (*models.RecommendationResponse, error) {
	var out models.RecommendationResponse
	if err := s.c.Get(ctx, "/recommendations/", recommendationQuery(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RecommendationService) list(ctx context.Context, path string, q url.Values) (*models.RecommendationList, error) {
	var out models.RecommendationList
	if err := s.c.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ContentBased forces the content-based engine
func (s *RecommendationService) ContentBased(ctx context.Context, p models.RecommendationParams) (*models.RecommendationList, error) {
	return s.list(ctx, "/recommendations/content-based", recommendationQuery(p))
}

// Collaborative forces collaborative filtering
func (s *RecommendationService) Collaborative(ctx context.Context, p models.RecommendationParams) (*models.RecommendationList, error) {
	return s.list(ctx, "/recommendations/collaborative", recommendationQuery(p))
}

// Hybrid blends both engines
func (s *RecommendationService) Hybrid(ctx context.Context, p models.RecommendationParams) (*models.RecommendationList, error) {
	return s.list(ctx, "/recommendations/hybrid", recommendationQuery(p))
}

// ForCondition recommends foods for a medical condition code; limit defaults to 10
func (s *RecommendationService) ForCondition(ctx context.Context, conditionCode string, limit int) (*models.RecommendationList, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	setInt(q, "limit", limit)
	return s.list(ctx, "/recommendations/for-condition/"+url.PathEscape(conditionCode), q)
}

// MethodInfo explains which engine is active
func (s *RecommendationService) MethodInfo(ctx context.Context) (*models.MethodInfo, error) {
	var out models.MethodInfo
	if err := s.c.Get(ctx, "/recommendations/method-info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserStats summarizes the user's rating activity
func (s *RecommendationService) UserStats(ctx context.Context) (*models.UserRecommendationStats, error) {
	var out models.UserRecommendationStats
	if err := s.c.Get(ctx, "/recommendations/user-recommendation-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History pages through past recommendations
func (s *RecommendationService) History(ctx context.Context, p models.HistoryParams) (*models.RecommendationHistory, error) {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "per_page", p.PerPage)
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	var out models.RecommendationHistory
	if err := s.c.Get(ctx, "/recommendations/recommendation-history", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackClick records that a recommendation was opened
func (s *RecommendationService) TrackClick(ctx context.Context, historyID int) (*models.ClickResponse, error) {
	var out models.ClickResponse
	body := map[string]int{"history_id": historyID}
	if err := s.c.Post(ctx, "/recommendations/click-recommendation", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimilarFoods lists foods close to foodID; limit defaults to 5
func (s *RecommendationService) SimilarFoods(ctx context.Context, foodID, limit int) (*models.SimilarFoodsResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{}
	setInt(q, "limit", limit)
	var out models.SimilarFoodsResponse
	if err := s.c.Get(ctx, fmt.Sprintf("/recommendations/similar-foods/%d", foodID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateCollaborative reports whether collaborative filtering can run
func (s *RecommendationService) ValidateCollaborative(ctx context.Context) (*models.CollaborativeReadiness, error) {
	var out models.CollaborativeReadiness
	if err := s.c.Get(ctx, "/recommendations/validate-collaborative", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemStats is the admin overview
func (s *RecommendationService) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	var out models.SystemStats
	if err := s.c.Get(ctx, "/recommendations/system-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks the recommendation subsystem
func (s *RecommendationService) Health(ctx context.Context) (*models.HealthCheckResponse, error) {
	var out models.HealthCheckResponse
	if err := s.c.Get(ctx, "/recommendations/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
