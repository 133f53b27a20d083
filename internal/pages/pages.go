package pages

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/wordlens/pkg/wordlens/content"
)

// maxLine bounds one JSONL record; a page may carry up to content.MaxHTMLSize of markup.
const maxLine = content.MaxHTMLSize + 64<<10

// Record is one page of a batch file
type Record struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Text          string  `json:"text"`
	HTML          string  `json:"html"`
	TextHTMLRatio float64 `json:"textHtmlRatio"`
}

// Page converts the record for analysis. Markup, when present, wins over text.
func (r Record) Page() (content.Page, error) {
	if r.HTML != "" {
		page, err := content.Extract(strings.NewReader(r.HTML))
		if err != nil {
			return content.Page{}, fmt.Errorf("extract %s: %w", r.URL, err)
		}
		page.URL = r.URL
		if r.Title != "" {
			page.Title = r.Title
		}
		return page, nil
	}
	page := content.FromText(r.Text, r.TextHTMLRatio)
	page.URL = r.URL
	page.Title = r.Title
	return page, nil
}

// LoadFromJSONL loads records from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses JSONL records from r. Malformed lines are skipped with a warning;
// name is used in messages only.
func Read(r io.Reader, name string) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLine)

	var records []Record
	for i := 1; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("[WARN] skipping malformed JSON at line %d in %s: %v", i, name, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", name)
	}

	return records, nil
}
