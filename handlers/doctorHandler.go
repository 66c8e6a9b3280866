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

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	q := repositories.UserQuery{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "name"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
		Page:      intQuery(c, "page", 1),
		PerPage:   intQuery(c, "per_page", 15),
	}

	doctors, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve doctors", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondPage(c, doctors, total, q.Page, q.PerPage)
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	doctor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if middlewares.ValidationError(c, err) {
			return
		}
		middlewares.HttpError(c, "Failed to create doctor", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusCreated, doctor, "Doctor created successfully")
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctor_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid doctor ID", http.StatusBadRequest, err)
		return
	}

	doctor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve doctor", http.StatusInternalServerError, err)
		return
	}
	if doctor == nil {
		middlewares.NotFound(c, "Doctor not found")
		return
	}
	middlewares.RespondData(c, http.StatusOK, doctor, "")
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctor_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid doctor ID", http.StatusBadRequest, err)
		return
	}

	var req models.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if middlewares.ValidationError(c, err) {
			return
		}
		middlewares.HttpError(c, "Failed to update doctor", http.StatusInternalServerError, err)
		return
	}
	if doctor == nil {
		middlewares.NotFound(c, "Doctor not found")
		return
	}
	middlewares.RespondData(c, http.StatusOK, doctor, "Doctor updated successfully")
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("doctor_id"), 10, 64)
	if err != nil {
		middlewares.HttpError(c, "Invalid doctor ID", http.StatusBadRequest, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			middlewares.NotFound(c, "Doctor not found")
			return
		}
		middlewares.HttpError(c, "Failed to delete doctor", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, nil, "Doctor deleted successfully")
}
