package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordlens/pkg/wordlens"
	"github.com/cognicore/wordlens/pkg/wordlens/content"
	"github.com/cognicore/wordlens/pkg/wordlens/density"
)

// pageReport is the result of one page plus run metadata.
type pageReport struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
	wordlens.Result
	Words []reportRow `json:"words"`
}

type reportRow struct {
	wordlens.WordCount
	Class density.Class `json:"class"`
}

func newReport(page content.Page, res wordlens.Result, ranges density.Ranges) pageReport {
	rep := pageReport{
		ID:     ulid.Make().String(),
		Source: page.URL,
		Result: res,
		Words:  make([]reportRow, len(res.Words)),
	}
	for i, w := range res.Words {
		rep.Words[i] = reportRow{WordCount: w, Class: ranges.Classify(w.Density)}
	}
	return rep
}

func writeReports(w io.Writer, format string, reports []pageReport) error {
	switch format {
	case "json":
		return writeJSON(w, reports)
	case "csv":
		return writeCSV(w, reports)
	case "copy":
		return writeCopy(w, reports)
	default:
		return writeTable(w, reports)
	}
}

// writeJSON prints a single report indented and batches as JSON lines.
func writeJSON(w io.Writer, reports []pageReport) error {
	enc := json.NewEncoder(w)
	if len(reports) == 1 {
		enc.SetIndent("", "  ")
	}
	for _, rep := range reports {
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}
	return nil
}

// writeCSV follows the spreadsheet export: Word/Phrase,Count,Density. Batches get a
// leading Source column.
func writeCSV(w io.Writer, reports []pageReport) error {
	cw := csv.NewWriter(w)
	batch := len(reports) > 1

	header := []string{"Word/Phrase", "Count", "Density"}
	if batch {
		header = append([]string{"Source"}, header...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rep := range reports {
		for _, row := range rep.Words {
			rec := []string{row.Text, strconv.Itoa(row.Count), strconv.FormatFloat(row.Density, 'f', 2, 64)}
			if batch {
				rec = append([]string{rep.Source}, rec...)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCopy(w io.Writer, reports []pageReport) error {
	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		rows := make([]density.Row, len(rep.Words))
		for j, r := range rep.Words {
			rows[j] = r.WordCount
		}
		if _, err := fmt.Fprintln(w, density.FormatCopy(rows)); err != nil {
			return err
		}
	}
	return nil
}

var classColors = map[density.Class]*color.Color{
	density.Under:   color.New(color.FgCyan),
	density.Optimal: color.New(color.FgGreen),
	density.Over:    color.New(color.FgRed),
}

func writeTable(w io.Writer, reports []pageReport) error {
	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeSummary(w, rep)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tWord/Phrase\tCount\tDensity\tClass")
		for n, row := range rep.Words {
			class := string(row.Class)
			if c, ok := classColors[row.Class]; ok {
				class = c.Sprint(class)
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f%%\t%s\n", n+1, row.Text, row.Count, row.Density, class)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, rep pageReport) {
	bold := color.New(color.Bold)
	if rep.Source != "" {
		bold.Fprintf(w, "%s\n", rep.Source)
	}
	if rep.Title != "" {
		fmt.Fprintf(w, "Title:          %s\n", rep.Title)
	}
	if len(rep.Headings) > 0 {
		fmt.Fprintf(w, "Headings:       %s\n", strings.Join(rep.Headings, " | "))
	}
	if rep.Language != "" {
		fmt.Fprintf(w, "Language:       %s (%.0f%%)\n", rep.Language, rep.Confidence*100)
	}
	fmt.Fprintf(w, "Total words:    %d\n", rep.TotalWords)
	fmt.Fprintf(w, "Unique words:   %d\n", rep.UniqueWords)
	fmt.Fprintf(w, "Avg length:     %.2f\n", rep.AvgWordLength)
	fmt.Fprintf(w, "Reading time:   %d min\n", rep.ReadingTime)
	fmt.Fprintf(w, "Text/HTML:      %.0f%%\n", rep.TextHTMLRatio)
	fmt.Fprintf(w, "Run:            %s\n\n", rep.ID)
}
