package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/repositories"
	"github.com/yogimardilah/klinik-api/services"
)

type PatientHandler struct {
	service *services.PatientService
	stats   *services.StatsService
}

func NewPatientHandler(service *services.PatientService, stats *services.StatsService) *PatientHandler {
	return &PatientHandler{service: service, stats: stats}
}

// ListPatients serves the paginated patient listing with search, filter, and
// sort query parameters.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	q := repositories.PatientQuery{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		Sex:       c.Query("sex"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
		Page:      intQuery(c, "page", 1),
		PerPage:   intQuery(c, "per_page", 15),
	}

	patients, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve patients", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondPage(c, patients, total, q.Page, q.PerPage)
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	patient, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if middlewares.ValidationError(c, err) {
			return
		}
		middlewares.HttpError(c, "Failed to create patient", http.StatusInternalServerError, err)
		return
	}

	middlewares.RecordPatientCreated()
	middlewares.RespondData(c, http.StatusCreated, patient, "Patient created successfully")
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("patient_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid patient ID", http.StatusBadRequest, err)
		return
	}

	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve patient", http.StatusInternalServerError, err)
		return
	}
	if patient == nil {
		middlewares.NotFound(c, "Patient not found")
		return
	}
	middlewares.RespondData(c, http.StatusOK, patient, "")
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("patient_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid patient ID", http.StatusBadRequest, err)
		return
	}

	var req models.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	patient, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if middlewares.ValidationError(c, err) {
			return
		}
		middlewares.HttpError(c, "Failed to update patient", http.StatusInternalServerError, err)
		return
	}
	if patient == nil {
		middlewares.NotFound(c, "Patient not found")
		return
	}
	middlewares.RespondData(c, http.StatusOK, patient, "Patient updated successfully")
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("patient_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid patient ID", http.StatusBadRequest, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middlewares.NotFound(c, "Patient not found")
			return
		}
		middlewares.HttpError(c, "Failed to delete patient", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, nil, "Patient deleted successfully")
}

// SearchPatients serves the lightweight autocomplete search.
func (h *PatientHandler) SearchPatients(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		middlewares.RespondData(c, http.StatusOK, []models.Patient{}, "")
		return
	}

	patients, err := h.service.Search(c.Request.Context(), query, intQuery(c, "limit", 10))
	if err != nil {
		middlewares.HttpError(c, "Failed to search patients", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, patients, "")
}

// PatientStatistics serves the patients-scoped statistics snapshot.
func (h *PatientHandler) PatientStatistics(c *gin.Context) {
	stats, err := h.stats.PatientStatistics(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve patient statistics", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, stats, "")
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
