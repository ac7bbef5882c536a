package handlers

import (
	"context"
	"errors"
	"net/http"

	"nutrirec-web/apiclient"
	"nutrirec-web/models"
	"nutrirec-web/session"

	"go.uber.org/zap"
)

// ProfilePage is the data of GET /profile
type ProfilePage struct {
	Catalog    []models.MedicalCondition     `json:"medical_conditions"`
	Conditions []models.UserMedicalCondition `json:"my_medical_conditions"`
}

// Profile handles GET /profile
func (h *Handler) Profile(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}
	h.render(ctx, w, r, entry, http.StatusOK, h.loadProfile(ctx, entry))
}

func (h *Handler) loadProfile(ctx context.Context, entry *session.Entry) ProfilePage {
	api := entry.Controller.API()
	page := ProfilePage{
		Catalog:    []models.MedicalCondition{},
		Conditions: []models.UserMedicalCondition{},
	}

	catalog, err := api.Users.MedicalConditions(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load medical conditions", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data profil")
		return page
	}
	mine, err := api.Users.MyMedicalConditions(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load user conditions", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memuat data profil")
		return page
	}

	page.Catalog = catalog
	if mine.Conditions != nil {
		page.Conditions = mine.Conditions
	}
	return page
}

// UpdateProfile handles POST /profile
func (h *Handler) UpdateProfile(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var update models.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}
	if update.Activity != "" && !update.Activity.Valid() {
		h.badRequest(ctx, w, "Invalid activity level", nil)
		return
	}
	if !update.DietGoal.Valid() {
		h.badRequest(ctx, w, "Invalid diet goal", nil)
		return
	}

	ctl := entry.Controller
	if _, err := ctl.API().Users.UpdateProfile(ctx, update); err != nil {
		h.log(ctx, "error", "Failed to update profile", zap.Error(err))
		notify(entry, session.LevelError, profileUpdateError(err))
	} else {
		ctl.RefreshUser(ctx)
		notify(entry, session.LevelSuccess, "Profil berhasil diperbarui!")
		h.log(ctx, "info", "Profile updated")
	}

	h.render(ctx, w, r, entry, http.StatusOK, h.loadProfile(ctx, entry))
}

// profileUpdateError quotes the API's error text; a request that never got
// an answer gets the bare message.
func profileUpdateError(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind == apiclient.KindNetwork {
		return "Gagal memperbarui profil"
	}
	reason := apiErr.ErrorText
	if reason == "" {
		reason = "Unknown error"
	}
	return "Gagal memperbarui profil: " + reason
}

// ConditionsRequest is the body of POST /profile/medical-conditions.
// Either Conditions replaces the whole set or Toggle flips one condition.
type ConditionsRequest struct {
	Conditions []models.ConditionSelection `json:"conditions"`
	Toggle     int                         `json:"toggle"`
}

// UpdateMedicalConditions handles POST /profile/medical-conditions
func (h *Handler) UpdateMedicalConditions(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	entry := h.session(ctx, w, r)
	if !h.guard(ctx, w, r, entry) {
		return
	}

	var req ConditionsRequest
	if err := decodeBody(r, &req); err != nil {
		h.badRequest(ctx, w, "Invalid JSON", err)
		return
	}

	if req.Toggle > 0 {
		h.toggleCondition(ctx, entry, req.Toggle)
	} else {
		h.replaceConditions(ctx, entry, req.Conditions)
	}

	h.render(ctx, w, r, entry, http.StatusOK, h.loadProfile(ctx, entry))
}

func (h *Handler) replaceConditions(ctx context.Context, entry *session.Entry, selected []models.ConditionSelection) {
	conditions := make([]models.ConditionSelection, 0, len(selected))
	for _, c := range selected {
		if c.Severity == "" {
			c.Severity = models.SeverityModerate
		}
		conditions = append(conditions, c)
	}
	_, err := entry.Controller.API().Users.UpdateMedicalConditions(ctx, models.UpdateMedicalConditionsRequest{Conditions: conditions})
	if err != nil {
		h.log(ctx, "error", "Failed to replace medical conditions", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memperbarui kondisi medis")
		return
	}
	notify(entry, session.LevelSuccess, "Kondisi medis berhasil diperbarui!")
}

func (h *Handler) toggleCondition(ctx context.Context, entry *session.Entry, id int) {
	api := entry.Controller.API()

	catalog, err := api.Users.MedicalConditions(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load medical conditions", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memperbarui kondisi medis")
		return
	}
	name := ""
	for _, c := range catalog {
		if c.ID == id {
			name = c.Name
			break
		}
	}
	if name == "" {
		notify(entry, session.LevelError, "Gagal memperbarui kondisi medis")
		return
	}

	mine, err := api.Users.MyMedicalConditions(ctx)
	if err != nil {
		h.log(ctx, "error", "Failed to load user conditions", zap.Error(err))
		notify(entry, session.LevelError, "Gagal memperbarui kondisi medis")
		return
	}

	removed := false
	next := make([]models.ConditionSelection, 0, len(mine.Conditions)+1)
	for _, c := range mine.Conditions {
		if c.ID == id {
			removed = true
			continue
		}
		next = append(next, models.ConditionSelection{ID: c.ID, Severity: c.Severity, Notes: c.Notes})
	}
	if !removed {
		next = append(next, models.ConditionSelection{
			ID:       id,
			Severity: models.SeverityModerate,
			Notes:    "Kondisi medis: " + name,
		})
	}

	if _, err := api.Users.UpdateMedicalConditions(ctx, models.UpdateMedicalConditionsRequest{Conditions: next}); err != nil {
		h.log(ctx, "error", "Failed to toggle medical condition", zap.Int("condition_id", id), zap.Error(err))
		notify(entry, session.LevelError, "Gagal memperbarui kondisi medis")
		return
	}
	if removed {
		notify(entry, session.LevelSuccess, name+" dihapus dari kondisi medis")
	} else {
		notify(entry, session.LevelSuccess, name+" ditambahkan ke kondisi medis")
	}
	h.log(ctx, "info", "Medical condition toggled", zap.Int("condition_id", id), zap.Bool("removed", removed))
}
