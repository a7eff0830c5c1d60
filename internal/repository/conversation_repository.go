package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// QARecord 代表存储在 Redis 中的单条问答记录。
type QARecord struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationRepository 定义了问答历史记录的操作接口。
type ConversationRepository interface {
	GetHistory(ctx context.Context, userID string) ([]QARecord, error)
	AppendRecord(ctx context.Context, userID string, record QARecord) error
}

type redisConversationRepository struct {
	redisClient *redis.Client
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(redisClient *redis.Client) ConversationRepository {
	return &redisConversationRepository{redisClient: redisClient}
}

func historyKey(userID string) string {
	return fmt.Sprintf("qa:history:%s", userID)
}

// GetHistory 从 Redis 获取用户的问答历史记录。
func (r *redisConversationRepository) GetHistory(ctx context.Context, userID string) ([]QARecord, error) {
	jsonData, err := r.redisClient.Get(ctx, historyKey(userID)).Result()
	if err == redis.Nil {
		return []QARecord{}, nil // 尚无历史
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get qa history: %w", err)
	}
	var records []QARecord
	if err := json.Unmarshal([]byte(jsonData), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal qa history: %w", err)
	}
	return records, nil
}

// AppendRecord 在 Redis 中追加一条问答记录。
func (r *redisConversationRepository) AppendRecord(ctx context.Context, userID string, record QARecord) error {
	records, err := r.GetHistory(ctx, userID)
	if err != nil {
		return err
	}
	records = append(records, record)
	// 保留最近 20 条
	if len(records) > 20 {
		records = records[len(records)-20:]
	}
	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal qa history: %w", err)
	}
	if err := r.redisClient.Set(ctx, historyKey(userID), jsonData, 7*24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to set qa history: %w", err)
	}
	return nil
}
