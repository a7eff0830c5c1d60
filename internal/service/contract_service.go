package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/log"
	"contract-ai-go/pkg/parser"
	"contract-ai-go/pkg/storage"
	"contract-ai-go/pkg/tasks"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisProducer 定义了服务层需要的分析任务投递接口。
type AnalysisProducer interface {
	ProduceAnalysisTask(task tasks.AnalysisTask) error
}

// 固定的合同洞察集合。洞察是模板数据，与条款内容无关。
var contractInsights = []model.Insight{
	{ID: 1, Type: "risk", Text: "Termination notice period is longer than standard."},
	{ID: 2, Type: "recommendation", Text: "Consider negotiating a liability cap based on annual fees."},
}

// ContractService 接口定义了合同文档相关的业务操作。
type ContractService interface {
	// Ingest 接收上传的合同文件，持久化文档与条款片段并触发后台分析。
	Ingest(ctx context.Context, userID string, file io.Reader, filename, parties string, expiryDate model.DateOnly) (*model.Document, error)
	ListDocuments(userID string) ([]model.Document, error)
	// GetDocumentDetail 返回文档、全部条款片段和固定洞察。
	// 文档不存在或属于他人时统一返回 ErrContractNotFound。
	GetDocumentDetail(userID, docID string) (*model.Document, []model.Chunk, []model.Insight, error)
}

type contractService struct {
	contractRepo repository.ContractRepository
	parserClient parser.Client
	objectStore  storage.ObjectStore
	producer     AnalysisProducer
}

// NewContractService 创建一个新的 ContractService 实例。
func NewContractService(contractRepo repository.ContractRepository, parserClient parser.Client, objectStore storage.ObjectStore, producer AnalysisProducer) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		parserClient: parserClient,
		objectStore:  objectStore,
		producer:     producer,
	}
}

// Ingest 处理一次合同上传。
// 1. 调用解析客户端抽取条款（当前为桩实现，输出与文件内容无关）；
// 2. 在单个事务中写入文档与条款片段（状态恒为 Active，风险恒为 Low）；
// 3. 将原始文件归档到对象存储、投递后台分析任务——两者失败只记日志，不影响上传结果。
func (s *contractService) Ingest(ctx context.Context, userID string, file io.Reader, filename, parties string, expiryDate model.DateOnly) (*model.Document, error) {
	// 文件内容需要同时交给解析客户端和对象存储，先整体读入
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}

	result, err := s.parserClient.ParseDocument(ctx, bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("条款抽取失败: %w", err)
	}

	doc := &model.Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		Filename:   filename,
		Parties:    parties,
		UploadDate: model.DateOnly(time.Now()),
		ExpiryDate: expiryDate,
		Status:     model.DocumentStatusActive,
		RiskScore:  model.RiskScoreLow,
	}
	doc.ObjectKey = fmt.Sprintf("contracts/%s/%s", doc.ID, filename)

	chunks := make([]*model.Chunk, 0, len(result.Chunks))
	for _, pc := range result.Chunks {
		chunks = append(chunks, &model.Chunk{
			ID:          uuid.NewString(),
			Text:        pc.Text,
			Embedding:   pc.Embedding,
			Page:        pc.Page,
			ClauseTitle: pc.ClauseTitle,
		})
	}

	if err := s.contractRepo.CreateWithChunks(doc, chunks); err != nil {
		return nil, fmt.Errorf("保存文档失败: %w", err)
	}
	log.Infof("[ContractService] 文档已保存, docID: %s, 条款数: %d", doc.ID, len(chunks))

	// 归档原始文件。归档失败不回滚已写入的文档
	if err := s.objectStore.PutObject(ctx, doc.ObjectKey, bytes.NewReader(data), int64(len(data)), "application/octet-stream"); err != nil {
		log.Errorf("[ContractService] 归档原始文件失败, docID: %s, error: %v", doc.ID, err)
	}

	// 触发后台分析
	task := tasks.AnalysisTask{
		DocID:    doc.ID,
		UserID:   userID,
		Filename: filename,
	}
	if err := s.producer.ProduceAnalysisTask(task); err != nil {
		log.Errorf("[ContractService] 发送分析任务到Kafka失败, docID: %s, error: %v", doc.ID, err)
	}

	return doc, nil
}

// ListDocuments 返回用户拥有的全部文档。
func (s *contractService) ListDocuments(userID string) ([]model.Document, error) {
	return s.contractRepo.FindByUserID(userID)
}

// GetDocumentDetail 返回文档详情、条款片段与固定洞察。
func (s *contractService) GetDocumentDetail(userID, docID string) (*model.Document, []model.Chunk, []model.Insight, error) {
	doc, err := s.contractRepo.FindByIDAndUserID(docID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrContractNotFound
		}
		return nil, nil, nil, err
	}

	chunks, err := s.contractRepo.FindChunksByDocID(doc.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	return doc, chunks, contractInsights, nil
}
