package allergen

import (
	"errors"
	"net/http"
	"strconv"

	"allergen-guard/internal/core/screening"
	"allergen-guard/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 過敏原檢查 API 處理器
type Handler struct {
	service     *screening.Service
	showDetails bool
}

// NewHandler 創建新的處理器，showDetails 為 true 時錯誤響應附上原始錯誤
func NewHandler(service *screening.Service, showDetails bool) *Handler {
	return &Handler{
		service:     service,
		showDetails: showDetails,
	}
}

// HandleCheck 處理 /allergens/check
func (h *Handler) HandleCheck(c *gin.Context) {
	requestID := getRequestID(c)

	var req screening.CheckRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	result, err := h.service.Check(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, requestID, "成分檢查失敗", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleCheckBatch 處理 /allergens/check/batch
func (h *Handler) HandleCheckBatch(c *gin.Context) {
	requestID := getRequestID(c)

	var req screening.BatchRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	result, err := h.service.CheckBatch(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, requestID, "批次檢查失敗", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleAlert 處理 /allergens/alert
func (h *Handler) HandleAlert(c *gin.Context) {
	requestID := getRequestID(c)

	var req screening.AlertRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	alert, err := h.service.ComposeAlert(&req)
	if err != nil {
		h.respondError(c, requestID, "警示組合失敗", err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// HandleKnownAllergens 處理 /allergens/aliases
func (h *Handler) HandleKnownAllergens(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.KnownAllergens())
}

// HandleAliases 處理 /allergens/aliases/:name
func (h *Handler) HandleAliases(c *gin.Context) {
	info, err := h.service.Aliases(c.Param("name"))
	if err != nil {
		h.respondError(c, getRequestID(c), "別名查詢失敗", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleSeverity 處理 /allergens/severity/:level
func (h *Handler) HandleSeverity(c *gin.Context) {
	requestID := getRequestID(c)

	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		h.respondError(c, requestID, "嚴重度格式無效", common.NewValidationError("severity must be an integer"))
		return
	}

	info, err := h.service.Severity(level)
	if err != nil {
		h.respondError(c, requestID, "嚴重度查詢失敗", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// bind 解析 JSON 請求體，失敗時已寫出響應
func (h *Handler) bind(c *gin.Context, requestID string, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(c, requestID, "請求體過大", common.ErrTooLarge.Wrap(err))
			return false
		}
		h.respondError(c, requestID, "請求格式無效", common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}

func (h *Handler) respondError(c *gin.Context, requestID, msg string, err error) {
	status, resp := common.ToErrorResponse(err, h.showDetails)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		common.LogError(msg, fields...)
	} else {
		common.LogWarn(msg, fields...)
	}

	c.JSON(status, resp)
}

// getRequestID 取得請求 ID，未經 requestid 中間件時自行生成
func getRequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}
