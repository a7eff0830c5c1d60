package model

import "time"

// 文档在本原型中的固定哨兵值：上传即视为解析完成，风险评级恒为低。
const (
	DocumentStatusActive = "Active"
	RiskScoreLow         = "Low"
)

// Document 对应于数据库中的 'documents' 表。
// 每个文档归属且仅归属一个用户，所有读取都必须按 user_id 过滤。
type Document struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:char(36);not null;index" json:"-"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Parties    string    `gorm:"type:varchar(500)" json:"parties"`
	UploadDate DateOnly  `gorm:"type:date" json:"uploadDate"`
	ExpiryDate DateOnly  `gorm:"type:date" json:"expiryDate"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	RiskScore  string    `gorm:"type:varchar(20);not null" json:"riskScore"`
	ObjectKey  string    `gorm:"type:varchar(512)" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Document) TableName() string {
	return "documents"
}

// Chunk 对应于数据库中的 'chunks' 表，保存文档的条款片段及其向量。
// UserID 是文档所有者的冗余副本，便于按所有者直接检索片段；
// 其一致性由 ContractRepository.CreateWithChunks 在唯一的写入点强制保证。
type Chunk struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	DocID       string    `gorm:"type:char(36);not null;index" json:"docId"`
	UserID      string    `gorm:"type:char(36);not null;index" json:"-"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Embedding   Vector    `gorm:"type:json" json:"embedding"`
	Page        int       `gorm:"not null" json:"page"`
	ClauseTitle string    `gorm:"type:varchar(100)" json:"clauseTitle"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Chunk) TableName() string {
	return "chunks"
}

// Insight 是返回给前端的合同洞察条目。洞察内容是固定的模板数据，不会持久化。
type Insight struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}
