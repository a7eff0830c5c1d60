package service

import (
	"context"
	"io"
	"os"
	"testing"

	"contract-ai-go/internal/model"
	"contract-ai-go/internal/repository"
	"contract-ai-go/pkg/log"
	"contract-ai-go/pkg/tasks"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

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

// fakeObjectStore 在内存中记录归档的对象。
type fakeObjectStore struct {
	objects []string
	err     error
}

func (f *fakeObjectStore) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.objects = append(f.objects, objectName)
	return nil
}

// fakeProducer 在内存中记录投递的分析任务。
type fakeProducer struct {
	produced []tasks.AnalysisTask
	err      error
}

func (f *fakeProducer) ProduceAnalysisTask(task tasks.AnalysisTask) error {
	if f.err != nil {
		return f.err
	}
	f.produced = append(f.produced, task)
	return nil
}

// fakeConversationRepo 在内存中保存问答历史。
type fakeConversationRepo struct {
	records map[string][]repository.QARecord
	err     error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{records: make(map[string][]repository.QARecord)}
}

func (f *fakeConversationRepo) GetHistory(ctx context.Context, userID string) ([]repository.QARecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[userID], nil
}

func (f *fakeConversationRepo) AppendRecord(ctx context.Context, userID string, record repository.QARecord) error {
	if f.err != nil {
		return f.err
	}
	f.records[userID] = append(f.records[userID], record)
	return nil
}
