package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carnage-ai/internal/app"
	"carnage-ai/internal/transport/http/response"
)

type TrainingHandler struct {
	trainingService *app.TrainingService
}

// binding:"required" on the numeric fields rejects zero values, which is the
// recorded contract: zero epochs/batch size/learning rate count as missing.
type CreateTrainingRequest struct {
	ModelID      uint    `json:"model_id" binding:"required"`
	Epochs       int     `json:"epochs" binding:"required,gt=0"`
	BatchSize    int     `json:"batch_size" binding:"required,gt=0"`
	LearningRate float64 `json:"learning_rate" binding:"required,gt=0"`
}

func NewTrainingHandler(trainingService *app.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

func (h *TrainingHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields")
		return
	}

	session, err := h.trainingService.Create(c.Request.Context(), app.CreateTrainingInput{
		UserID:       userID,
		ModelID:      req.ModelID,
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		LearningRate: req.LearningRate,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTrainingInvalid):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrModelNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *TrainingHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := h.trainingService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
