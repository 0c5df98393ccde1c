package web

import (
	"log/slog"
	"net/http"

	"clubdesk/internal/application/projections"
)

func incomeDeps() projections.IncomeDeps {
	return projections.IncomeDeps{
		PaymentStore: stores.PaymentStore,
		CourseStore:  stores.CourseStore,
	}
}

// handleAnalysis handles GET /api/analysis?period=month|quarter|year|all.
func handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	summary, err := projections.QueryAnalysisSummary(r.Context(),
		projections.IncomeInput{Period: r.URL.Query().Get("period")}, incomeDeps())
	if err != nil {
		slog.Error("analysis_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build analysis")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleAnalysisCoaches handles GET /api/analysis/coaches?period=.
func handleAnalysisCoaches(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	income, err := projections.QueryCoachIncome(r.Context(),
		projections.IncomeInput{Period: r.URL.Query().Get("period")}, incomeDeps())
	if err != nil {
		slog.Error("coach_income_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build coach income")
		return
	}
	if income == nil {
		income = []projections.CoachIncome{}
	}
	writeJSON(w, http.StatusOK, income)
}

// handleAnalysisCourses handles GET /api/analysis/courses?period=.
func handleAnalysisCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	income, err := projections.QueryCourseIncome(r.Context(),
		projections.IncomeInput{Period: r.URL.Query().Get("period")}, incomeDeps())
	if err != nil {
		slog.Error("course_income_failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to build course income")
		return
	}
	if income == nil {
		income = []projections.CourseIncome{}
	}
	writeJSON(w, http.StatusOK, income)
}
