package rows

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Manifest resolves a request's optional "sheet" (term) selector to the
// three on-disk CSV files backing that term, defaulting to "latest" when
// the request is silent about it (original_source/quickshift/src/excel/
// cache.rs and malla.rs support the same per-term sheet selection).
type Manifest struct {
	Sheets map[string]SheetFiles `yaml:"sheets"`
	Latest string                `yaml:"latest"`
}

// SheetFiles names the three CSV files for one term.
type SheetFiles struct {
	CurriculumPath string `yaml:"curriculum"`
	OfferingPath   string `yaml:"offering"`
	DifficultyPath string `yaml:"difficulty"`
}

// Resolve returns the SheetFiles for the requested sheet name, falling
// back to Latest when sheet is empty.
func (m Manifest) Resolve(sheet string) (SheetFiles, error) {
	if sheet == "" {
		sheet = m.Latest
	}
	sf, ok := m.Sheets[sheet]
	if !ok {
		return SheetFiles{}, fmt.Errorf("unknown sheet %q", sheet)
	}
	return sf, nil
}

// Documents is the three row sets the planner needs, plus a count of how
// many documents were actually read (for Response.DocumentsRead).
type Documents struct {
	Curriculum    []CurriculumRow
	Offering      []OfferingRow
	Difficulty    []DifficultyRow
	DocumentsRead int
}

// Load reads the three CSV files concurrently via errgroup, matching the
// teacher's concurrent-fetch shape in A1CEClient.GetCourseCatalog but
// generalized from sequential per-subdomain HTTP calls to three parallel
// file reads, and fails fast on the first error.
func Load(ctx context.Context, files SheetFiles) (Documents, error) {
	var docs Documents
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rs, err := loadCurriculumCSV(files.CurriculumPath)
		if err != nil {
			return fmt.Errorf("load curriculum %s: %w", files.CurriculumPath, err)
		}
		docs.Curriculum = rs
		return nil
	})
	g.Go(func() error {
		rs, err := loadOfferingCSV(files.OfferingPath)
		if err != nil {
			return fmt.Errorf("load offering %s: %w", files.OfferingPath, err)
		}
		docs.Offering = rs
		return nil
	})
	g.Go(func() error {
		rs, err := loadDifficultyCSV(files.DifficultyPath)
		if err != nil {
			return fmt.Errorf("load difficulty %s: %w", files.DifficultyPath, err)
		}
		docs.Difficulty = rs
		return nil
	})

	if err := g.Wait(); err != nil {
		return Documents{}, err
	}
	docs.DocumentsRead = 3
	return docs, nil
}

// CSV layouts:
//
//	curriculum.csv:  malla_id,name,semester,prerequisite_ids,is_critical_hint
//	offering.csv:    code,name,section_label,meetings,instructor,raw_code
//	difficulty.csv:  code,name,approval_percent,is_elective

func loadCurriculumCSV(path string) ([]CurriculumRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]CurriculumRow, 0, len(records))
	for _, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("malformed curriculum row %v", rec)
		}
		mallaID, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed malla_id %q: %w", rec[0], err)
		}
		var semester *int
		if s := strings.TrimSpace(rec[2]); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("malformed semester %q: %w", rec[2], err)
			}
			semester = &v
		}
		var prereqs []int
		if s := strings.TrimSpace(rec[3]); s != "" {
			for _, tok := range strings.Split(s, ";") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				v, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("malformed prerequisite id %q: %w", tok, err)
				}
				prereqs = append(prereqs, v)
			}
		}
		isCritical := false
		if len(rec) > 4 {
			isCritical = strings.EqualFold(strings.TrimSpace(rec[4]), "true")
		}
		rows = append(rows, CurriculumRow{
			MallaID:         mallaID,
			Name:            strings.TrimSpace(rec[1]),
			Semester:        semester,
			PrerequisiteIDs: prereqs,
			IsCriticalHint:  isCritical,
		})
	}
	return rows, nil
}

func loadOfferingCSV(path string) ([]OfferingRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rowsOut := make([]OfferingRow, 0, len(records))
	for _, rec := range records {
		if len(rec) < 5 {
			return nil, fmt.Errorf("malformed offering row %v", rec)
		}
		raw := ""
		if len(rec) > 5 {
			raw = strings.TrimSpace(rec[5])
		}
		meetingsRaw := strings.TrimSpace(rec[3])
		meetings, err := ParseMeetings(meetingsRaw)
		if err != nil {
			return nil, fmt.Errorf("offering row %q: %w", rec[0], err)
		}
		rowsOut = append(rowsOut, OfferingRow{
			Code:         strings.TrimSpace(rec[0]),
			Name:         strings.TrimSpace(rec[1]),
			SectionLabel: strings.TrimSpace(rec[2]),
			MeetingsRaw:  meetingsRaw,
			Meetings:     meetings,
			Instructor:   strings.TrimSpace(rec[4]),
			RawCode:      raw,
		})
	}
	return rowsOut, nil
}

func loadDifficultyCSV(path string) ([]DifficultyRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rowsOut := make([]DifficultyRow, 0, len(records))
	for _, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("malformed difficulty row %v", rec)
		}
		rowsOut = append(rowsOut, DifficultyRow{
			Code:            strings.TrimSpace(rec[0]),
			Name:            strings.TrimSpace(rec[1]),
			ApprovalPercent: strings.TrimSpace(rec[2]),
			IsElective:      strings.EqualFold(strings.TrimSpace(rec[3]), "true"),
		})
	}
	return rowsOut, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil // drop header row
}
