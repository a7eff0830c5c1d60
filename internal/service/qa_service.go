package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/log"
)

// retrievalLimit 是一次问答返回的条款片段数量上限。
const retrievalLimit = 2

// queryVector 是检索排序使用的固定查询向量。
// 它不是问题文本的真实嵌入，真实嵌入属于尚未接入的向量检索子系统。
var queryVector = model.Vector{0.1, 0.2, 0.3, 0.4}

// AskResult 是一次问答的完整结果。
type AskResult struct {
	Answer          string        `json:"answer"`
	RetrievedChunks []model.Chunk `json:"retrieved_chunks"`
}

// QAService 接口定义了合同问答的业务操作。
type QAService interface {
	// Ask 对用户的条款片段按固定查询向量做余弦距离排序，取前 retrievalLimit 条，
	// 并返回一条仅回显问题文本的模板答案。问题的语义不参与任何计算。
	Ask(ctx context.Context, userID, question string) (*AskResult, error)
}

type qaService struct {
	contractRepo     repository.ContractRepository
	conversationRepo repository.ConversationRepository
}

// NewQAService 创建一个新的 QAService 实例。
func NewQAService(contractRepo repository.ContractRepository, conversationRepo repository.ConversationRepository) QAService {
	return &qaService{
		contractRepo:     contractRepo,
		conversationRepo: conversationRepo,
	}
}

// Ask 执行一次模拟的检索问答。
func (s *qaService) Ask(ctx context.Context, userID, question string) (*AskResult, error) {
	chunks, err := s.contractRepo.FindChunksByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("检索条款片段失败: %w", err)
	}

	ranked := rankByQueryVector(chunks)
	if len(ranked) > retrievalLimit {
		ranked = ranked[:retrievalLimit]
	}

	answer := fmt.Sprintf("Based on the retrieved documents, the answer to '%s' relates to termination and liability clauses. Please review the provided snippets for details.", question)

	// 历史记录是尽力而为的：Redis 故障不影响问答结果
	record := repository.QARecord{Question: question, Answer: answer, Timestamp: time.Now()}
	if err := s.conversationRepo.AppendRecord(ctx, userID, record); err != nil {
		log.Warnf("[QAService] 保存问答历史失败, userID: %s, error: %v", userID, err)
	}

	return &AskResult{Answer: answer, RetrievedChunks: ranked}, nil
}

// rankByQueryVector 按与固定查询向量的余弦距离升序排列片段。
// 无法计算距离的片段（维度不符或零向量）排在末尾，保持插入相对顺序。
func rankByQueryVector(chunks []model.Chunk) []model.Chunk {
	type scored struct {
		chunk model.Chunk
		dist  float64
		ok    bool
	}
	items := make([]scored, 0, len(chunks))
	for _, c := range chunks {
		d, err := c.Embedding.CosineDistance(queryVector)
		items = append(items, scored{chunk: c, dist: d, ok: err == nil})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].dist < items[j].dist
	})
	ranked := make([]model.Chunk, 0, len(items))
	for _, it := range items {
		ranked = append(ranked, it.chunk)
	}
	return ranked
}
