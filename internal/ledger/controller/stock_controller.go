package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

type AdjustStockUseCase interface {
	Receive(ctx context.Context, req dto.ReceiveRequest) (*dto.ReceiveResponse, error)
	Issue(ctx context.Context, req dto.IssueRequest) (*dto.IssueResponse, error)
	Adjust(ctx context.Context, req dto.AdjustRequest) (*dto.AdjustResponse, error)
}

type ListMovementsUseCase interface {
	ListReceipts(ctx context.Context, filter dto.ReceiptFilter) ([]dto.ReceiptDTO, error)
	ListIssuances(ctx context.Context, filter dto.IssuanceFilter) ([]dto.IssuanceDTO, error)
}

type StockController struct {
	adjustUC AdjustStockUseCase
	listUC   ListMovementsUseCase
	logger   *zap.Logger
}

func NewStockController(adjustUC AdjustStockUseCase, listUC ListMovementsUseCase, logger *zap.Logger) *StockController {
	return &StockController{
		adjustUC: adjustUC,
		listUC:   listUC,
		logger:   logger,
	}
}

func (c *StockController) HandleReceive(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ReceiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := c.adjustUC.Receive(r.Context(), req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *StockController) HandleIssue(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := c.adjustUC.Issue(r.Context(), req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *StockController) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := c.adjustUC.Adjust(r.Context(), req)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *StockController) HandleListReceipts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var filter dto.ReceiptFilter
	var details []apperrors.ValidationDetail

	filter.ProductID = parseIntParam(r, "productId", &details)
	filter.SupplierID = parseIntParam(r, "supplierId", &details)
	filter.DateFrom = parseTimeParam(r, "dateFrom", &details)
	filter.DateTo = parseTimeParam(r, "dateTo", &details)

	if len(details) > 0 {
		c.writeValidationError(w, "invalid filters", details...)
		return
	}

	receipts, err := c.listUC.ListReceipts(r.Context(), filter)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, receipts)
}

func (c *StockController) HandleListIssuances(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var filter dto.IssuanceFilter
	var details []apperrors.ValidationDetail

	filter.ProductID = parseIntParam(r, "productId", &details)
	filter.UserID = parseIntParam(r, "userId", &details)
	filter.DateFrom = parseTimeParam(r, "dateFrom", &details)
	filter.DateTo = parseTimeParam(r, "dateTo", &details)

	if len(details) > 0 {
		c.writeValidationError(w, "invalid filters", details...)
		return
	}

	issuances, err := c.listUC.ListIssuances(r.Context(), filter)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, issuances)
}

func parseIntParam(r *http.Request, name string, details *[]apperrors.ValidationDetail) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		*details = append(*details, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
		return nil
	}
	return &v
}

func parseTimeParam(r *http.Request, name string, details *[]apperrors.ValidationDetail) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	*details = append(*details, apperrors.ValidationDetail{
		Field:   name,
		Message: name + " must be an RFC3339 timestamp or YYYY-MM-DD date",
	})
	return nil
}

func (c *StockController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", err.Error(),
			&dto.InsufficientStockDetails{
				ProductID: ise.ProductID,
				Requested: ise.Requested,
				Available: ise.Available,
			})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *StockController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string, details *dto.InsufficientStockDetails) {
	response := dto.StockErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusCode, response)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *StockController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *StockController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
