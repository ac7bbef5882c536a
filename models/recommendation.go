package models

// RecommendationMethod names the engine that produced a recommendation
type RecommendationMethod string

const (
	MethodContentBased  RecommendationMethod = "content_based"
	MethodCollaborative RecommendationMethod = "collaborative"
	MethodHybrid        RecommendationMethod = "hybrid"
)

// Valid reports whether m names one of the engines
func (m RecommendationMethod) Valid() bool {
	return m == MethodContentBased || m == MethodCollaborative || m == MethodHybrid
}

// RecommendationParams are the query parameters shared by the recommendation endpoints
type RecommendationParams struct {
	Limit  int
	Method RecommendationMethod
}

// RecommendationResponse is returned by GET /recommendations/
type RecommendationResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Recommendations      []Food               `json:"recommendations"`
		TotalRecommendations int                  `json:"total_recommendations"`
		MethodUsed           RecommendationMethod `json:"method_used"`
		TotalUsers           int                  `json:"total_users"`
		UserID               int                  `json:"user_id"`
	} `json:"data"`
	Message string `json:"message"`
}

// RecommendationList is the reply of the per-method endpoints
type RecommendationList struct {
	Recommendations        []Food `json:"recommendations"`
	Total                  int    `json:"total"`
	RecommendationType     string `json:"recommendation_type,omitempty"`
	TotalUsersInSystem     int    `json:"total_users_in_system,omitempty"`
	CollaborativeAvailable bool   `json:"collaborative_available,omitempty"`
	Condition              string `json:"condition,omitempty"`
}

// MethodInfo describes which engine is active and why
type MethodInfo struct {
	Success bool `json:"success"`
	Data    struct {
		CurrentMethod               RecommendationMethod            `json:"current_method"`
		TotalUsers                  int                             `json:"total_users"`
		UsersNeededForCollaborative int                             `json:"users_needed_for_collaborative"`
		CollaborativeAvailable      bool                            `json:"collaborative_available"`
		UserRatingsCount            int                             `json:"user_ratings_count"`
		TotalRatingsInSystem        int                             `json:"total_ratings_in_system"`
		ExistingEndpoints           map[string]string               `json:"existing_endpoints,omitempty"`
		MethodDescription           map[RecommendationMethod]string `json:"method_description,omitempty"`
	} `json:"data"`
}

// UserRecommendationStats summarizes the current user's rating activity
type UserRecommendationStats struct {
	Success bool `json:"success"`
	Data    struct {
		TotalRatings            int              `json:"total_ratings"`
		LikedFoods              int              `json:"liked_foods"`
		DislikedFoods           int              `json:"disliked_foods"`
		AverageRating           float64          `json:"average_rating"`
		RatingDistribution      map[string]int   `json:"rating_distribution,omitempty"`
		CategoriesRated         map[string]int   `json:"categories_rated,omitempty"`
		RecommendationsReceived int              `json:"recommendations_received"`
		RatingDensity           float64          `json:"rating_density"`
		Readiness               ReadinessSummary `json:"recommendation_readiness"`
	} `json:"data"`
}

// ReadinessSummary tells which engines can serve the user yet
type ReadinessSummary struct {
	ContentBasedReady  bool     `json:"content_based_ready"`
	CollaborativeReady bool     `json:"collaborative_ready"`
	Suggestions        []string `json:"suggestions"`
}

// HistoryParams are the query parameters of the recommendation history endpoint
type HistoryParams struct {
	Page    int
	PerPage int
	Type    string
}

// Pagination is the API's pagination envelope
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// RecommendationHistory is a page of past recommendations
type RecommendationHistory struct {
	Success bool `json:"success"`
	Data    struct {
		History    []RecommendationHistoryItem `json:"history"`
		Pagination Pagination                  `json:"pagination"`
	} `json:"data"`
}

// RecommendationHistoryItem is one past recommendation
type RecommendationHistoryItem struct {
	ID                 int                  `json:"history_id"`
	FoodID             int                  `json:"food_id"`
	RecommendationType RecommendationMethod `json:"recommendation_type"`
	SimilarityScore    *float64             `json:"similarity_score,omitempty"`
	FinalScore         *float64             `json:"final_score,omitempty"`
	IsClicked          bool                 `json:"is_clicked"`
	RecommendedAt      string               `json:"recommended_at"`
	FoodInfo           struct {
		Name        string   `json:"nama_makanan"`
		CategoryID  int      `json:"category_id"`
		Energy      float64  `json:"energi"`
		HealthScore *float64 `json:"health_score,omitempty"`
	} `json:"food_info"`
}

// ClickResponse is returned when a recommendation click is tracked
type ClickResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SimilarFoodsResponse is returned by GET /recommendations/similar-foods/{id}
type SimilarFoodsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TargetFood struct {
			ID         int    `json:"food_id"`
			Name       string `json:"nama_makanan"`
			CategoryID int    `json:"category_id"`
		} `json:"target_food"`
		SimilarFoods []Food `json:"similar_foods"`
		TotalFound   int    `json:"total_found"`
	} `json:"data"`
}

// CollaborativeReadiness reports whether collaborative filtering can run
type CollaborativeReadiness struct {
	Success bool `json:"success"`
	Data    struct {
		CollaborativeAvailable    bool `json:"collaborative_available"`
		UserReadyForCollaborative bool `json:"user_ready_for_collaborative"`
		Requirements              struct {
			MinUsers            int `json:"min_users"`
			CurrentUsers        int `json:"current_users"`
			MinTotalRatings     int `json:"min_total_ratings"`
			CurrentTotalRatings int `json:"current_total_ratings"`
			MinUserRatings      int `json:"min_user_ratings"`
			CurrentUserRatings  int `json:"current_user_ratings"`
		} `json:"requirements"`
		Recommendations struct {
			SuggestedMethod RecommendationMethod `json:"suggested_method"`
			NextSteps       []string             `json:"next_steps"`
		} `json:"recommendations"`
	} `json:"data"`
}

// SystemStats is the admin overview of the recommendation system
type SystemStats struct {
	Success bool `json:"success"`
	Data    struct {
		Overview struct {
			TotalUsers               int                  `json:"total_users"`
			TotalFoods               int                  `json:"total_foods"`
			TotalRatings             int                  `json:"total_ratings"`
			CollaborativeAvailable   bool                 `json:"collaborative_available"`
			CurrentMethod            RecommendationMethod `json:"current_method"`
			UsersWithRatings         int                  `json:"users_with_ratings"`
			UsersWithRecommendations int                  `json:"users_with_recommendations"`
		} `json:"system_overview"`
		MethodUsage          map[string]int `json:"method_usage,omitempty"`
		RatingDistribution   map[string]int `json:"rating_distribution,omitempty"`
		CategoryDistribution map[string]int `json:"category_distribution,omitempty"`
		Engagement           struct {
			RatingParticipationRate       float64 `json:"rating_participation_rate"`
			RecommendationUsageRate       float64 `json:"recommendation_usage_rate"`
			AverageRatingsPerUser         float64 `json:"average_ratings_per_user"`
			AverageRecommendationsPerUser float64 `json:"average_recommendations_per_user"`
		} `json:"engagement_metrics"`
	} `json:"data"`
}

// HealthCheckResponse is returned by the health endpoints
type HealthCheckResponse struct {
	Status               string `json:"status"`
	Database             string `json:"database,omitempty"`
	Message              string `json:"message,omitempty"`
	Error                string `json:"error,omitempty"`
	RecommendationSystem *struct {
		TotalUsers             int                  `json:"total_users"`
		CurrentMethod          RecommendationMethod `json:"current_method"`
		CollaborativeAvailable bool                 `json:"collaborative_available"`
		DatabaseConnected      bool                 `json:"database_connected"`
	} `json:"recommendation_system,omitempty"`
	Timestamp string `json:"timestamp"`
}
