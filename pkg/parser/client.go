// Package parser 提供了合同条款抽取客户端。
// 当前实现是占位桩：接受文件字节但从不解析，返回固定的条款集合，
// 输出只与文件名有关（用于拼接条款文本），与文件内容完全无关。
// 接入真实解析服务时，仅需提供 Client 接口的新实现。
package parser

import (
	"context"
	"fmt"
	"io"

	"contract-ai-go/internal/model"
	"contract-ai-go/pkg/log"
)

// ParsedChunk 是解析服务返回的单个条款片段。
type ParsedChunk struct {
	Text        string
	Embedding   model.Vector
	Page        int
	ClauseTitle string
}

// ParseResult 是一次解析调用的完整结果。
type ParseResult struct {
	Chunks []ParsedChunk
}

// Client 定义了条款抽取客户端的接口。
type Client interface {
	ParseDocument(ctx context.Context, file io.Reader, filename string) (*ParseResult, error)
}

type mockClient struct{}

// NewMockClient 创建一个返回固定条款数据的解析客户端。
func NewMockClient() Client {
	return &mockClient{}
}

// ParseDocument 消费文件内容后丢弃，并返回固定的两条条款。
// 输出是确定性的：相同文件名永远得到相同的结果。
func (c *mockClient) ParseDocument(ctx context.Context, file io.Reader, filename string) (*ParseResult, error) {
	// 读出文件字节以模拟真实上传流程，内容不参与任何计算
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	log.Infof("[Parser] 模拟解析文档 '%s' (%d 字节)，返回固定条款集合", filename, n)

	return &ParseResult{
		Chunks: []ParsedChunk{
			{
				Text:        fmt.Sprintf("Termination clause for %s: Either party may terminate with 90 days’ notice.", filename),
				Embedding:   model.Vector{0.12, -0.45, 0.91, 0.33},
				Page:        2,
				ClauseTitle: "Termination",
			},
			{
				Text:        fmt.Sprintf("Liability cap from %s: Limited to 12 months’ fees.", filename),
				Embedding:   model.Vector{0.01, 0.22, -0.87, 0.44},
				Page:        5,
				ClauseTitle: "Liability",
			},
		},
	}, nil
}
