package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mangashelf/pkg/models"
)

// CSVHeader is the column order WriteCSV emits. ReadCSV matches columns by
// name, case-insensitively, so extra or reordered columns are fine.
var CSVHeader = []string{"id", "title", "code", "genres", "status", "cover", "synopsis", "rating", "url"}

// ReadCSV parses an authoring sheet. Rows without an id or a title are
// skipped. Genres are comma separated or a JSON array.
func ReadCSV(r io.Reader) ([]models.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, ok := header["id"]; !ok {
		return nil, errors.New("csv: missing id column")
	}
	if _, ok := header["title"]; !ok {
		return nil, errors.New("csv: missing title column")
	}

	var items []models.Item
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		title := valueAt(header, row, "title")
		if id == "" || title == "" {
			continue
		}

		rating, err := parseRating(valueAt(header, row, "rating"))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse rating for %s: %w", line, id, err)
		}
		genres, err := parseGenres(valueAt(header, row, "genres"))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse genres for %s: %w", line, id, err)
		}

		items = append(items, models.Item{
			ID:       models.ItemID(id),
			Title:    title,
			Code:     valueAt(header, row, "code"),
			Genres:   genres,
			Status:   valueAt(header, row, "status"),
			Cover:    valueAt(header, row, "cover"),
			Synopsis: valueAt(header, row, "synopsis"),
			Rating:   rating,
			URL:      valueAt(header, row, "url"),
		})
	}
	return items, nil
}

func WriteCSV(w io.Writer, items []models.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, it := range items {
		rating := ""
		if it.Rating != 0 {
			rating = strconv.FormatFloat(it.Rating, 'f', -1, 64)
		}
		if err := cw.Write([]string{
			it.ID.String(),
			it.Title,
			it.Code,
			strings.Join(it.Genres, ", "),
			it.Status,
			it.Cover,
			it.Synopsis,
			rating,
			it.URL,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(strings.TrimPrefix(name, "\ufeff")))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRating(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseGenres(raw string) ([]string, error) {
	genres := []string{}
	if raw == "" {
		return genres, nil
	}
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &genres); err != nil {
			return nil, err
		}
		return genres, nil
	}
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres, nil
}
