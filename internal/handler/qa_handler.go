package handler

import (
	"net/http"

	"contract-ai-go/internal/service"
	"contract-ai-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// QAHandler 负责处理合同问答相关的 API 请求。
type QAHandler struct {
	qaService service.QAService
}

// NewQAHandler 创建一个新的 QAHandler 实例。
func NewQAHandler(qaService service.QAService) *QAHandler {
	return &QAHandler{qaService: qaService}
}

// AskRequest 定义了问答 API 的请求体结构。
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask 处理问答请求，返回模板答案和为当前用户检索到的条款片段。
func (h *QAHandler) Ask(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载：question 不能为空"})
		return
	}

	result, err := h.qaService.Ask(c.Request.Context(), user.ID, req.Question)
	if err != nil {
		log.Error("Ask: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "问答处理失败"})
		return
	}

	c.JSON(http.StatusOK, result)
}
