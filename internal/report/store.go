package report

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nao1215/docscore/internal/model"
	"golang.org/x/crypto/sha3"
)

// Output subdirectories of a FileStore.
const (
	ResultsDir = "analysis_results"
	ContentDir = "scraped_content"
	ReportsDir = "reports"
)

// digestLength is the number of hex characters of the URL digest used in
// file names.
const digestLength = 12

// ErrEmptyRoot is returned when a FileStore is created without a directory.
var ErrEmptyRoot = errors.New("output directory is empty")

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9.-]+`)

// FileStore writes analysis artifacts below a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory and its subdirectories.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	for _, dir := range []string{ResultsDir, ContentDir, ReportsDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return &FileStore{root: root}, nil
}

// Root returns the root directory.
func (s *FileStore) Root() string {
	return s.root
}

// SaveResult writes result as JSON and returns the file path.
func (s *FileStore) SaveResult(result *model.AnalysisResult) (string, error) {
	path := filepath.Join(s.root, ResultsDir, FileName(result.URL, ".json"))
	return path, writeJSONFile(path, result)
}

// SaveDocument writes the extracted document as JSON and returns the
// file path.
func (s *FileStore) SaveDocument(doc *model.Document) (string, error) {
	path := filepath.Join(s.root, ContentDir, FileName(doc.URL, ".json"))
	return path, writeJSONFile(path, doc)
}

// SaveOutcome writes the result and document of a successful outcome.
// Failures are not saved individually; they appear in the batch summary.
func (s *FileStore) SaveOutcome(out model.Outcome) error {
	if out.Document != nil {
		if _, err := s.SaveDocument(out.Document); err != nil {
			return err
		}
	}
	if out.Result != nil {
		if _, err := s.SaveResult(out.Result); err != nil {
			return err
		}
	}
	return nil
}

// SaveBatchSummary writes the batch summary as JSON and Markdown under
// the reports directory and returns both paths.
func (s *FileStore) SaveBatchSummary(outcomes []model.Outcome) (string, string, error) {
	summary := NewBatchSummary(outcomes)
	stamp := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(s.root, ReportsDir, "batch_summary_"+stamp+".json")
	if err := writeJSONFile(jsonPath, summary); err != nil {
		return "", "", err
	}

	mdPath := filepath.Join(s.root, ReportsDir, "batch_report_"+stamp+".md")
	f, err := os.Create(filepath.Clean(mdPath))
	if err != nil {
		return "", "", fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors are reported by WriteBatch

	if _, err := NewMarkdownWriter(f).WriteBatch(outcomes); err != nil {
		return "", "", fmt.Errorf("failed to write report: %w", err)
	}
	return jsonPath, mdPath, nil
}

// FileName returns "<host>_<digest><ext>" for rawURL. The digest is a
// SHA3-256 prefix of the full URL, so different pages on one host get
// different names and the same URL always maps to the same file.
func FileName(rawURL, ext string) string {
	host := "page"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.Trim(unsafeName.ReplaceAllString(host, "_"), "_.")
	if host == "" {
		host = "page"
	}

	sum := sha3.Sum256([]byte(rawURL))
	return host + "_" + hex.EncodeToString(sum[:])[:digestLength] + ext
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
