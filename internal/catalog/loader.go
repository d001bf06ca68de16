// Package catalog loads and serves the exam/topic catalog consumed by the
// mentor core. Records are read-only once loaded; the ingestion pipeline that
// produces the files is a separate concern.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader loads and caches exam records from the filesystem.
type Loader struct {
	rootDir string
	exams   map[string]Exam
	mu      sync.RWMutex
}

// NewLoader creates a new catalog loader and loads all exam files.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir: rootDir,
		exams:   make(map[string]Exam),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	slog.Info("exam catalog loaded", "exams", len(l.exams))
	return l, nil
}

// Exam returns an exam record by code.
func (l *Loader) Exam(code string) (Exam, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.exams[code]
	return e, ok
}

// Exams returns all loaded exams ordered by code.
func (l *Loader) Exams() []Exam {
	l.mu.RLock()
	defer l.mu.RUnlock()
	exams := make([]Exam, 0, len(l.exams))
	for _, e := range l.exams {
		exams = append(exams, e)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].Code < exams[j].Code })
	return exams
}

// TopicsForExam returns the topic records for an exam code in catalog order.
// The order is the tie-break for equal priority scores, so it is preserved
// exactly as authored.
func (l *Loader) TopicsForExam(code string) ([]Topic, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.exams[code]
	if !ok {
		return nil, false
	}
	return e.Topics, true
}

// ExamDates returns the scheduled dates for an exam code, or nil if the exam
// is unknown or has no published dates.
func (l *Loader) ExamDates(code string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.exams[code].ExamDates
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadExam(path)
	})
}

func (l *Loader) loadExam(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Warn("skipping unparseable exam YAML", "path", path, "error", err)
		return nil
	}
	if _, ok := doc["code"]; !ok {
		return nil // Not an exam file
	}

	if err := validateExamDocument(doc); err != nil {
		slog.Warn("skipping invalid exam record", "path", path, "error", err)
		return nil
	}

	var exam Exam
	if err := yaml.Unmarshal(data, &exam); err != nil {
		slog.Warn("skipping undecodable exam record", "path", path, "error", err)
		return nil
	}

	l.mu.Lock()
	l.exams[exam.Code] = exam
	l.mu.Unlock()

	return nil
}
