package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// EmbeddingDim 是合同条款向量的固定维度。
const EmbeddingDim = 4

// Vector 是存储在数据库中的定长浮点向量。
// MySQL 没有原生向量类型，这里以 JSON 文本形式落库。
type Vector []float32

// Value 实现 driver.Valuer 接口，将向量序列化为 JSON。
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan 实现 sql.Scanner 接口，从 JSON 文本还原向量。
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	var data []byte
	switch src := value.(type) {
	case []byte:
		data = src
	case string:
		data = []byte(src)
	default:
		return fmt.Errorf("无法将 %T 扫描为 Vector", value)
	}
	return json.Unmarshal(data, v)
}

// CosineDistance 计算两个向量的余弦距离 (1 - 余弦相似度)。
// 维度不一致或任一向量为零向量时返回错误。
func (v Vector) CosineDistance(other Vector) (float64, error) {
	if len(v) != len(other) {
		return 0, errors.New("向量维度不一致")
	}
	var dot, normA, normB float64
	for i := range v {
		dot += float64(v[i]) * float64(other[i])
		normA += float64(v[i]) * float64(v[i])
		normB += float64(other[i]) * float64(other[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("零向量无法计算余弦距离")
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}
