package handlers

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

const (
	favoriteMinRating  = 3.0
	highRatedMinRating = 4.5
)

// FavoriteFilter narrows the favorites list
type FavoriteFilter string

const (
	FilterAll       FavoriteFilter = "all"
	FilterLiked     FavoriteFilter = "liked"
	FilterHighRated FavoriteFilter = "high_rated"
)

// FavoriteSort orders the favorites list
type FavoriteSort string

const (
	SortRating FavoriteSort = "rating"
	SortName   FavoriteSort = "name"
	// SortRecent keeps the order the API returned
	SortRecent FavoriteSort = "recent"
)

// FavoritesQuery is what the favorites page can be asked for
type FavoritesQuery struct {
	Search string         `json:"search,omitempty"`
	Filter FavoriteFilter `json:"filter"`
	Sort   FavoriteSort   `json:"sort"`
}

// FavoritesPage is the data of GET /favorites
type FavoritesPage struct {
	Query      FavoritesQuery      `json:"query"`
	Favorites  []models.UserRating `json:"favorites"`
	Shown      int                 `json:"shown"`
	Total      int                 `json:"total"`
	LikedCount int                 `json:"liked_count"`
}

func parseFavoritesQuery(r *http.Request) FavoritesQuery {
	query := r.URL.Query()
	q := FavoritesQuery{
		Search: strings.TrimSpace(query.Get("search")),
		Filter: FavoriteFilter(query.Get("filter")),
		Sort:   FavoriteSort(query.Get("sort")),
	}
	switch q.Filter {
	case FilterAll, FilterLiked, FilterHighRated:
	default:
		q.Filter = FilterAll
	}
	switch q.Sort {
	case SortRating, SortName, SortRecent:
	default:
		q.Sort = SortRating
	}
	return q
}

// isFavorite keeps ratings of at least 3 and liked foods
func isFavorite(r models.UserRating) bool {
	return (r.Rating != nil && *r.Rating >= favoriteMinRating) || isLiked(r)
}

func isLiked(r models.UserRating) bool {
	return r.IsLiked != nil && *r.IsLiked
}

func ratingOr0(r models.UserRating) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// SelectFavorites returns the favorite subset of ratings
func SelectFavorites(ratings []models.UserRating) []models.UserRating {
	out := make([]models.UserRating, 0, len(ratings))
	for _, r := range ratings {
		if isFavorite(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterFavorites applies search, filter and sort without touching favorites
func FilterFavorites(favorites []models.UserRating, q FavoritesQuery) []models.UserRating {
	search := strings.ToLower(q.Search)
	out := make([]models.UserRating, 0, len(favorites))
	for _, r := range favorites {
		if search != "" && (r.FoodName == "" || !strings.Contains(strings.ToLower(r.FoodName), search)) {
			continue
		}
		switch q.Filter {
		case FilterLiked:
			if !isLiked(r) {
				continue
			}
		case FilterHighRated:
			if r.Rating == nil || *r.Rating < highRatedMinRating {
				continue
			}
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortRating:
		slices.SortStableFunc(out, func(a, b models.UserRating) int {
			ra, rb := ratingOr0(a), ratingOr0(b)
			switch {
			case ra > rb:
				return -1
			case ra < rb:
				return 1
			}
			return 0
		})
	case SortName:
		slices.SortStableFunc(out, func(a, b models.UserRating) int {
			return strings.Compare(strings.ToLower(a.FoodName), strings.ToLower(b.FoodName))
		})
	}
	return out
}

// Favorites handles GET /favorites?search=&filter=&sort=
func (h *Handler) Favorites(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	q := parseFavoritesQuery(r)
	page := FavoritesPage{Query: q, Favorites: []models.UserRating{}}

	ratings, err := entry.Controller.API().Foods.MyRatings(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load ratings", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat makanan favorit")
		h.render(ctx, w, r, entry, http.StatusOK, page)
		return
	}

	favorites := SelectFavorites(ratings)
	for _, f := range favorites {
		if isLiked(f) {
			page.LikedCount++
		}
	}
	page.Total = len(favorites)
	page.Favorites = FilterFavorites(favorites, q)
	page.Shown = len(page.Favorites)

	h.render(ctx, w, r, entry, http.StatusOK, page)
}
