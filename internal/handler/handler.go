// Package handler exposes the tutoring service over HTTP as a JSON API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"readtutor/internal/model"
	"readtutor/internal/store"
	"readtutor/internal/tutor"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store *store.Store
	tutor *tutor.Service
}

// New creates a new Handler.
func New(s *store.Store, t *tutor.Service) *Handler {
	return &Handler{store: s, tutor: t}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/introduction", h.handleIntroduction)
	r.Get("/api/self-rate", h.handleSelfRate)
	r.Get("/api/strategies", h.handleStrategies)
	r.Get("/api/exam/{examID}", h.handleGetExam)

	r.Get("/api/user/{name}", h.handleGetUser)
	r.Get("/api/analyze-profile/{name}", h.handleAnalyzeProfile)
	r.Get("/api/analyze-wrong-answers/{name}", h.handleAnalyzeWrongAnswers)
	r.Get("/api/suggest-strategies/{name}", h.handleSuggestStrategies)
	r.Get("/api/final-summary/{name}", h.handleFinalSummary)
	r.Post("/api/chat", h.handleChat)

	r.Post("/api/user-profile", h.handleCreateProfile)
	r.Post("/api/exam-result", h.handleExamResult)
	r.Post("/api/strategy-result", h.handleStrategyResult)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func (h *Handler) handleIntroduction(w http.ResponseWriter, r *http.Request) {
	content, err := h.store.GetIntroduction()
	if err != nil {
		slog.Error("loading introduction failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to load introduction",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"content": content})
}

func (h *Handler) handleSelfRate(w http.ResponseWriter, r *http.Request) {
	h.handleSurvey(w, h.store.ListSelfRateItems)
}

func (h *Handler) handleStrategies(w http.ResponseWriter, r *http.Request) {
	h.handleSurvey(w, h.store.ListStrategyItems)
}

func (h *Handler) handleSurvey(w http.ResponseWriter, list func() ([]model.SurveyItem, error)) {
	items, err := list()
	if err != nil {
		slog.Error("loading survey items failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to load survey items",
		})
		return
	}
	if items == nil {
		items = []model.SurveyItem{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "items": items})
}

func (h *Handler) handleGetExam(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "examID")
	examID, err := strconv.Atoi(raw)
	if err != nil || examID <= 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "exam id must be a positive integer", "exam_id": raw,
		})
		return
	}

	exam, err := h.store.GetExamByID(examID)
	if err != nil {
		slog.Error("loading exam failed", "exam_id", examID, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to load exam",
		})
		return
	}
	if exam == nil {
		respondJSON(w, http.StatusNotFound, map[string]any{
			"success": false, "message": "exam not found", "exam_id": examID,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"exam_id":   exam.ID,
		"content":   exam.Content,
		"questions": exam.Questions,
	})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	profile, _ := h.tutor.ResolveProfile(name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "user": profile})
}

func (h *Handler) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	analysis := h.tutor.AnalyzeProfile(r.Context(), name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": analysis})
}

func (h *Handler) handleAnalyzeWrongAnswers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	analysis := h.tutor.AnalyzeWrongAnswers(r.Context(), name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": analysis})
}

func (h *Handler) handleSuggestStrategies(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	suggestions := h.tutor.SuggestStrategies(r.Context(), name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "suggestions": suggestions})
}

func (h *Handler) handleFinalSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	summary := h.tutor.FinalSummary(r.Context(), name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "invalid request body",
		})
		return
	}
	response := h.tutor.Chat(r.Context(), req.Name, req.Message)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "response": response})
}

// profilePayload is the user-profile creation body. Fields are kept as
// strings end to end, matching the storage schema.
type profilePayload struct {
	Name             string `json:"name"`
	Grade            string `json:"grade"`
	Major            string `json:"major"`
	Gender           string `json:"gender"`
	CET4Taken        string `json:"cet4_taken"`
	CET4Score        string `json:"cet4_score"`
	CET4ReadingScore string `json:"cet4_reading_score"`
	CET6Taken        string `json:"cet6_taken"`
	CET6Score        string `json:"cet6_score"`
	CET6ReadingScore string `json:"cet6_reading_score"`
	OtherScores      string `json:"other_scores"`
	ExamName         string `json:"exam_name"`
	TotalScore       string `json:"total_score"`
	ReadingScore     string `json:"reading_score"`
}

func (h *Handler) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "invalid request body",
		})
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "name is required",
		})
		return
	}

	profile := model.LearnerProfile{
		Name:             req.Name,
		Grade:            req.Grade,
		Major:            req.Major,
		Gender:           req.Gender,
		CET4Taken:        req.CET4Taken,
		CET4Score:        req.CET4Score,
		CET4ReadingScore: req.CET4ReadingScore,
		CET6Taken:        req.CET6Taken,
		CET6Score:        req.CET6Score,
		CET6ReadingScore: req.CET6ReadingScore,
		OtherScores:      req.OtherScores,
		ExamName:         req.ExamName,
		TotalScore:       req.TotalScore,
		ReadingScore:     req.ReadingScore,
	}
	if err := h.store.CreateProfile(profile); err != nil {
		slog.Error("creating profile failed", "name", req.Name, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to create profile",
		})
		return
	}
	slog.Info("profile created", "name", req.Name)
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "profile created"})
}

func (h *Handler) handleExamResult(w http.ResponseWriter, r *http.Request) {
	var result model.ExamResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "invalid request body",
		})
		return
	}
	if err := h.tutor.SubmitExamResult(result); err != nil {
		slog.Error("submitting exam result failed", "name", result.Name, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to submit exam result",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "exam result submitted"})
}

func (h *Handler) handleStrategyResult(w http.ResponseWriter, r *http.Request) {
	var result model.StrategyResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "invalid request body",
		})
		return
	}
	if err := h.tutor.SubmitStrategyResult(result); err != nil {
		slog.Error("submitting strategy result failed", "name", result.Name, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "failed to submit strategy result",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "strategy result submitted"})
}
