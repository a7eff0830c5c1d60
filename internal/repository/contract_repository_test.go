package repository

import (
	"errors"
	"testing"

	"contract-ai-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Document{}, &model.Chunk{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func newTestDocument(userID string) *model.Document {
	return &model.Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  "msa.pdf",
		Parties:   "Acme Corp, Globex Inc",
		Status:    model.DocumentStatusActive,
		RiskScore: model.RiskScoreLow,
	}
}

func newTestChunk(text string) *model.Chunk {
	return &model.Chunk{
		ID:        uuid.NewString(),
		Text:      text,
		Embedding: model.Vector{0.1, 0.2, 0.3, 0.4},
		Page:      1,
	}
}

func TestCreateWithChunks(t *testing.T) {
	db := openTestDB(t)
	repo := NewContractRepository(db)

	doc := newTestDocument("user-a")
	chunks := []*model.Chunk{newTestChunk("termination"), newTestChunk("liability")}
	// 故意设置错误的归属，写入点必须用父文档的值覆盖
	chunks[0].UserID = "someone-else"
	chunks[1].DocID = "wrong-doc"

	if err := repo.CreateWithChunks(doc, chunks); err != nil {
		t.Fatalf("CreateWithChunks error: %v", err)
	}

	stored, err := repo.FindChunksByDocID(doc.ID)
	if err != nil {
		t.Fatalf("FindChunksByDocID error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(stored))
	}
	for _, c := range stored {
		if c.UserID != doc.UserID {
			t.Fatalf("chunk owner %q does not match document owner %q", c.UserID, doc.UserID)
		}
		if c.DocID != doc.ID {
			t.Fatalf("chunk doc id %q does not match document id %q", c.DocID, doc.ID)
		}
	}
}

func TestCreateWithChunks_Atomicity(t *testing.T) {
	db := openTestDB(t)
	repo := NewContractRepository(db)

	doc := newTestDocument("user-a")
	// 两个片段使用相同主键，第二次插入必然失败，整个事务应当回滚
	dup := newTestChunk("first")
	chunks := []*model.Chunk{dup, {ID: dup.ID, Text: "second", Embedding: model.Vector{0, 0, 0, 1}, Page: 2}}

	if err := repo.CreateWithChunks(doc, chunks); err == nil {
		t.Fatalf("expected error from duplicate chunk id")
	}

	docs, err := repo.FindByUserID("user-a")
	if err != nil {
		t.Fatalf("FindByUserID error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("document must not survive a failed chunk write, got %d documents", len(docs))
	}
}

func TestFindByIDAndUserID_NoExistenceLeak(t *testing.T) {
	db := openTestDB(t)
	repo := NewContractRepository(db)

	doc := newTestDocument("user-a")
	if err := repo.CreateWithChunks(doc, nil); err != nil {
		t.Fatalf("CreateWithChunks error: %v", err)
	}

	// 他人的文档与不存在的文档必须返回同一个错误
	_, errForeign := repo.FindByIDAndUserID(doc.ID, "user-b")
	_, errMissing := repo.FindByIDAndUserID(uuid.NewString(), "user-b")
	if !errors.Is(errForeign, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign document, got %v", errForeign)
	}
	if !errors.Is(errMissing, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing document, got %v", errMissing)
	}

	if _, err := repo.FindByIDAndUserID(doc.ID, "user-a"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestFindChunksByUserID_Scoping(t *testing.T) {
	db := openTestDB(t)
	repo := NewContractRepository(db)

	docA := newTestDocument("user-a")
	docB := newTestDocument("user-b")
	if err := repo.CreateWithChunks(docA, []*model.Chunk{newTestChunk("a1"), newTestChunk("a2")}); err != nil {
		t.Fatalf("CreateWithChunks error: %v", err)
	}
	if err := repo.CreateWithChunks(docB, []*model.Chunk{newTestChunk("b1")}); err != nil {
		t.Fatalf("CreateWithChunks error: %v", err)
	}

	chunks, err := repo.FindChunksByUserID("user-a")
	if err != nil {
		t.Fatalf("FindChunksByUserID error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for user-a, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.UserID != "user-a" {
			t.Fatalf("got chunk owned by %q in user-a's result", c.UserID)
		}
	}
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	u := &model.User{ID: uuid.NewString(), Username: "alice", Password: "hash"}
	if err := repo.Create(u); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	byName, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if byName.ID != u.ID {
		t.Fatalf("id mismatch: got %q want %q", byName.ID, u.ID)
	}

	byID, err := repo.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("username mismatch: got %q", byID.Username)
	}

	if _, err := repo.FindByUsername("nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	// 用户名唯一索引必须拒绝重名，且驱动错误要翻译成 gorm.ErrDuplicatedKey，
	// 服务层据此把并发注册撞名映射为用户名冲突
	dup := &model.User{ID: uuid.NewString(), Username: "alice", Password: "hash2"}
	err = repo.Create(dup)
	if err == nil {
		t.Fatalf("expected unique constraint violation for duplicate username")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}
