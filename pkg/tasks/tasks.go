// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// AnalysisTask represents the data structure for a post-upload contract analysis job.
type AnalysisTask struct {
	DocID    string `json:"doc_id"`
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
}
