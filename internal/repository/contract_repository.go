package repository

import (
	"contract-ai-go/internal/model"

	"gorm.io/gorm"
)

// ContractRepository 接口定义了合同文档及其条款片段的持久化操作。
// 所有读取都以所有者 ID 为过滤条件，跨用户的数据在这一层就不可见。
type ContractRepository interface {
	// CreateWithChunks 在同一个事务中创建文档及其全部条款片段。
	// 文档和片段要么一起出现，要么都不出现。
	CreateWithChunks(doc *model.Document, chunks []*model.Chunk) error
	FindByUserID(userID string) ([]model.Document, error)
	FindByIDAndUserID(docID, userID string) (*model.Document, error)
	FindChunksByDocID(docID string) ([]model.Chunk, error)
	FindChunksByUserID(userID string) ([]model.Chunk, error)
}

// contractRepository 是 ContractRepository 接口的 GORM 实现。
type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository 创建一个新的 ContractRepository 实例。
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// CreateWithChunks 以单个事务写入文档与条款片段。
// 每个片段的 DocID 与 UserID 在这里从父文档强制覆盖，
// 冗余的所有者字段因此不可能与父文档不一致。
func (r *contractRepository) CreateWithChunks(doc *model.Document, chunks []*model.Chunk) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		for _, chunk := range chunks {
			chunk.DocID = doc.ID
			chunk.UserID = doc.UserID
		}
		if len(chunks) > 0 {
			if err := tx.CreateInBatches(chunks, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByUserID 查找指定用户拥有的所有文档。顺序由存储决定，不做显式排序。
func (r *contractRepository) FindByUserID(userID string) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Where("user_id = ?", userID).Find(&docs).Error
	return docs, err
}

// FindByIDAndUserID 查找指定用户拥有的单个文档。
// 文档不存在和文档属于他人返回同样的 gorm.ErrRecordNotFound，不泄露存在性。
func (r *contractRepository) FindByIDAndUserID(docID, userID string) (*model.Document, error) {
	var doc model.Document
	err := r.db.Where("id = ? AND user_id = ?", docID, userID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindChunksByDocID 查找某个文档的全部条款片段。
func (r *contractRepository) FindChunksByDocID(docID string) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := r.db.Where("doc_id = ?", docID).Find(&chunks).Error
	return chunks, err
}

// FindChunksByUserID 查找指定用户拥有的全部条款片段。
func (r *contractRepository) FindChunksByUserID(userID string) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := r.db.Where("user_id = ?", userID).Find(&chunks).Error
	return chunks, err
}
