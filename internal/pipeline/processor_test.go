package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/es"
	"contract-ai-go/pkg/log"
	"contract-ai-go/pkg/tasks"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

type fakeIndexer struct {
	indexed []es.ChunkDocument
	err     error
}

func (f *fakeIndexer) IndexChunk(ctx context.Context, doc es.ChunkDocument) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func newTestRepo(t *testing.T) repository.ContractRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Document{}, &model.Chunk{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return repository.NewContractRepository(db)
}

func seedDocument(t *testing.T, repo repository.ContractRepository, chunkCount int) *model.Document {
	t.Helper()
	doc := &model.Document{
		ID:        uuid.NewString(),
		UserID:    "user-a",
		Filename:  "msa.pdf",
		Status:    model.DocumentStatusActive,
		RiskScore: model.RiskScoreLow,
	}
	chunks := make([]*model.Chunk, 0, chunkCount)
	for i := 0; i < chunkCount; i++ {
		chunks = append(chunks, &model.Chunk{
			ID:        uuid.NewString(),
			Text:      "clause",
			Embedding: model.Vector{0.1, 0.2, 0.3, 0.4},
			Page:      i + 1,
		})
	}
	if err := repo.CreateWithChunks(doc, chunks); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func TestProcess(t *testing.T) {
	repo := newTestRepo(t)
	doc := seedDocument(t, repo, 2)
	indexer := &fakeIndexer{}
	p := NewProcessor(repo, indexer)

	if err := p.Process(context.Background(), tasks.AnalysisTask{DocID: doc.ID, UserID: doc.UserID, Filename: doc.Filename}); err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if len(indexer.indexed) != 2 {
		t.Fatalf("expected 2 indexed chunks, got %d", len(indexer.indexed))
	}
	for _, d := range indexer.indexed {
		if d.DocID != doc.ID {
			t.Fatalf("indexed doc id %q does not match task document %q", d.DocID, doc.ID)
		}
		if d.UserID != doc.UserID {
			t.Fatalf("indexed chunk must carry the document owner, got %q", d.UserID)
		}
	}
}

func TestProcess_NoChunks(t *testing.T) {
	repo := newTestRepo(t)
	p := NewProcessor(repo, &fakeIndexer{})

	if err := p.Process(context.Background(), tasks.AnalysisTask{DocID: uuid.NewString()}); err == nil {
		t.Fatalf("expected error for a document without chunks")
	}
}

func TestProcess_IndexerFailure(t *testing.T) {
	repo := newTestRepo(t)
	doc := seedDocument(t, repo, 1)
	indexer := &fakeIndexer{err: errors.New("es down")}
	p := NewProcessor(repo, indexer)

	// 索引失败必须向消费者返回错误，让任务走重试流程
	if err := p.Process(context.Background(), tasks.AnalysisTask{DocID: doc.ID}); err == nil {
		t.Fatalf("expected error when indexing fails")
	}
}
