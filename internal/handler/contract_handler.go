package handler

import (
	"errors"
	"net/http"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/service"
	"contract-ai-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// currentUser 从上下文中取出由 AuthMiddleware 注入的 User 对象。
func currentUser(c *gin.Context) (*model.User, bool) {
	userValue, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return nil, false
	}
	user, ok := userValue.(*model.User)
	if !ok || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户数据类型错误"})
		return nil, false
	}
	return user, true
}

// ContractHandler 负责处理合同文档相关的 API 请求。
type ContractHandler struct {
	contractService service.ContractService
}

// NewContractHandler 创建一个新的 ContractHandler 实例。
func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Upload 处理合同上传请求。
// multipart 表单字段：file (文件内容)、parties (缔约方)、expiry_date (YYYY-MM-DD)。
func (h *ContractHandler) Upload(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未能获取上传的文件"})
		return
	}
	parties := c.PostForm("parties")
	if parties == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 parties 参数"})
		return
	}
	expiryDate, err := model.ParseDateOnly(c.PostForm("expiry_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 expiry_date，期望格式 YYYY-MM-DD"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Upload: failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	doc, err := h.contractService.Ingest(c.Request.Context(), user.ID, file, fileHeader.Filename, parties, expiryDate)
	if err != nil {
		log.Error("Upload: ingest failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "文档处理失败"})
		return
	}

	log.Infof("User '%s' uploaded contract '%s' (docID=%s)", user.Username, doc.Filename, doc.ID)
	c.JSON(http.StatusOK, gin.H{
		"filename": doc.Filename,
		"doc_id":   doc.ID,
		"status":   "processed",
	})
}

// List 返回当前用户的全部合同文档。
func (h *ContractHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	docs, err := h.contractService.ListDocuments(user.ID)
	if err != nil {
		log.Error("List: failed to list documents", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取文档列表失败"})
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}

	c.JSON(http.StatusOK, docs)
}

// Detail 返回单个合同文档的详情、条款片段与洞察。
// 文档不存在与文档属于他人返回完全相同的 404 响应。
func (h *ContractHandler) Detail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	docID := c.Param("id")

	doc, chunks, insights, err := h.contractService.GetDocumentDetail(user.ID, docID)
	if err != nil {
		if errors.Is(err, service.ErrContractNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		log.Error("Detail: failed to get document detail", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取文档详情失败"})
		return
	}
	if chunks == nil {
		chunks = []model.Chunk{}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         doc.ID,
		"filename":   doc.Filename,
		"parties":    doc.Parties,
		"uploadDate": doc.UploadDate,
		"expiryDate": doc.ExpiryDate,
		"status":     doc.Status,
		"riskScore":  doc.RiskScore,
		"clauses":    chunks,
		"insights":   insights,
	})
}
