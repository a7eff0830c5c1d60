// Package pipeline 定义了合同上传后的后台分析流程。
package pipeline

import (
	"context"
	"fmt"

	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/es"
	"contract-ai-go/pkg/log"
	"contract-ai-go/pkg/tasks"
)

// Processor 封装了分析任务的所有依赖和逻辑。
// 上传接口已经把条款片段写入数据库（解析是桩实现），
// 这里负责把片段同步到 Elasticsearch 索引，为将来的真实向量检索准备数据。
type Processor struct {
	contractRepo repository.ContractRepository
	indexer      es.Indexer
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(contractRepo repository.ContractRepository, indexer es.Indexer) *Processor {
	return &Processor{
		contractRepo: contractRepo,
		indexer:      indexer,
	}
}

// Process 是分析任务的主函数。
func (p *Processor) Process(ctx context.Context, task tasks.AnalysisTask) error {
	log.Infof("[Processor] 开始处理分析任务, docID: %s, filename: %s", task.DocID, task.Filename)

	// 1. 从数据库加载文档的条款片段
	chunks, err := p.contractRepo.FindChunksByDocID(task.DocID)
	if err != nil {
		log.Errorf("[Processor] 加载条款片段失败, docID: %s, Error: %v", task.DocID, err)
		return fmt.Errorf("加载条款片段失败: %w", err)
	}
	if len(chunks) == 0 {
		// 文档与片段在同一事务写入，这种情况只会出现在任务先于事务可见时
		log.Warnf("[Processor] 文档没有任何条款片段, docID: %s", task.DocID)
		return fmt.Errorf("文档 %s 没有条款片段", task.DocID)
	}

	// 2. 将每个片段索引到 Elasticsearch（文档 ID 固定，重复处理是幂等的）
	for _, chunk := range chunks {
		doc := es.ChunkDocument{
			ChunkID:     chunk.ID,
			DocID:       chunk.DocID,
			UserID:      chunk.UserID,
			Text:        chunk.Text,
			Vector:      chunk.Embedding,
			Page:        chunk.Page,
			ClauseTitle: chunk.ClauseTitle,
		}
		if err := p.indexer.IndexChunk(ctx, doc); err != nil {
			log.Errorf("[Processor] 索引条款片段失败, chunkID: %s, Error: %v", chunk.ID, err)
			return fmt.Errorf("索引条款片段失败: %w", err)
		}
	}

	log.Infof("[Processor] 分析任务完成, docID: %s, 已索引片段数: %d", task.DocID, len(chunks))
	return nil
}
