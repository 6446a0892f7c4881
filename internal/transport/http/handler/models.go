package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"carnage-ai/internal/app"
	"carnage-ai/internal/transport/http/response"
)

type ModelHandler struct {
	modelService *app.ModelService
}

type CreateModelRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Architecture json.RawMessage `json:"architecture"`
}

// UpdateModelRequest distinguishes "absent" from "set to zero value" with
// pointers; only supplied fields reach the store.
type UpdateModelRequest struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Architecture json.RawMessage `json:"architecture"`
	Status       *string         `json:"status"`
}

func NewModelHandler(modelService *app.ModelService) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

func (h *ModelHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	m, err := h.modelService.Create(app.CreateModelInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Architecture: datatypes.JSON(req.Architecture),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrModelNameRequired):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"model": m})
}

func (h *ModelHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	models, err := h.modelService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (h *ModelHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	modelID, ok := parseIDParam(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid model id")
		return
	}

	m, err := h.modelService.Get(userID, modelID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrModelNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"model": m})
}

func (h *ModelHandler) Update(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	modelID, ok := parseIDParam(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid model id")
		return
	}

	var req UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	m, err := h.modelService.Update(userID, modelID, app.UpdateModelInput{
		Name:         req.Name,
		Description:  req.Description,
		Architecture: datatypes.JSON(req.Architecture),
		Status:       req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrModelNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"model": m})
}

func (h *ModelHandler) Delete(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	modelID, ok := parseIDParam(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid model id")
		return
	}

	if err := h.modelService.Delete(userID, modelID); err != nil {
		switch {
		case errors.Is(err, app.ErrModelNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}
