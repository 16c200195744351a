package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/caselith/lexfmt/internal/model"
)

// MockRunner implements Runner interface
type MockRunner struct {
	ShouldError bool
}

func (m *MockRunner) FormatFile(ctx context.Context, path string) (*model.FormatReport, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("format error")
	}
	return &model.FormatReport{
		Subject:    "Test Draft",
		SourcePath: path,
	}, nil
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	paths := []string{"drafts/claim.txt", "drafts/complaint.txt", "drafts/answer.txt"}
	ctx := context.Background()

	results := processor.ProcessFiles(ctx, paths)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Report == nil {
				t.Error("expected report for successful format")
			}
		} else {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ResultsSorted(t *testing.T) {
	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 4)

	// Deliberately out of order; completion order varies with scheduling
	paths := []string{"c.txt", "a.txt", "d.txt", "b.txt"}

	results := processor.ProcessFiles(context.Background(), paths)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	got := make([]string, len(results))
	for i, res := range results {
		got[i] = res.Path
	}

	if !sort.StringsAreSorted(got) {
		t.Errorf("expected results sorted by path, got %v", got)
	}
}

func TestBatchProcessor_ProcessFiles_Error(t *testing.T) {
	runner := &MockRunner{ShouldError: true}
	processor := NewBatchProcessor(runner, 2)

	paths := []string{"drafts/claim.txt"}
	ctx := context.Background()

	results := processor.ProcessFiles(ctx, paths)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessFiles_Empty(t *testing.T) {
	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessFiles(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessDir(t *testing.T) {
	dir := t.TempDir()

	files := []string{"claim.txt", "complaint.md", "summons.html", "notes.json"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("WHEREFORE, relief.\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0755); err != nil {
		t.Fatal(err)
	}

	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results, err := processor.ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessDir failed: %v", err)
	}

	// notes.json and archive/ are skipped
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	expected := []string{
		filepath.Join(dir, "claim.txt"),
		filepath.Join(dir, "complaint.md"),
		filepath.Join(dir, "summons.html"),
	}
	for i, res := range results {
		if res.Path != expected[i] {
			t.Errorf("expected path %s at index %d, got %s", expected[i], i, res.Path)
		}
	}
}

func TestBatchProcessor_ProcessDir_NonExistent(t *testing.T) {
	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	_, err := processor.ProcessDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for non-existent dir, got nil")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	content := `drafts/claim.txt
# comment
drafts/complaint.txt

drafts/summons.txt   `

	tmpfile, err := os.CreateTemp("", "paths")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	expected := []string{"drafts/claim.txt", "drafts/complaint.txt", "drafts/summons.txt"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d", len(expected), len(paths))
	}

	for i, path := range paths {
		if path != expected[i] {
			t.Errorf("expected path %s at index %d, got %s", expected[i], i, path)
		}
	}
}

func TestReadPathsFromFile_NonExistent(t *testing.T) {
	_, err := ReadPathsFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadPathsFromFile_Deduplication(t *testing.T) {
	content := `drafts/claim.txt
drafts/claim.txt`

	tmpfile, err := os.CreateTemp("", "paths_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	if len(paths) != 1 {
		t.Errorf("expected 1 path after deduplication, got %d", len(paths))
	}
}

func TestFormatResult_GetError(t *testing.T) {
	r1 := &FormatResult{Path: "drafts/claim.txt", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("format failed")
	r2 := &FormatResult{Path: "drafts/claim.txt", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessList(t *testing.T) {
	content := "drafts/claim.txt\ndrafts/complaint.txt\n# comment\n\ndrafts/summons.txt\n"

	tmpfile, err := os.CreateTemp("", "batch_paths")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results, err := processor.ProcessList(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessList failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessList_NonExistent(t *testing.T) {
	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	_, err := processor.ProcessList(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessList_Empty(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "empty_paths")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	runner := &MockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results, err := processor.ProcessList(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessList failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty list, got %d", len(results))
	}
}
