package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sportmarket/internal/domain"
)

// ProductWriter receives each parsed product with its detail entry.
type ProductWriter interface {
	Register(p domain.Product, d domain.ProductDetail) error
}

// CSVImporter reads catalog CSV files and registers extra products.
//
// Columns: id, name, category, price, mrp, discount, colors, sizes, image, images,
// details, about. List columns are ';'-separated; details entries are "Name=Value".
// Rows with an empty id continue the previous product and may add images and about lines.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
	logger *zap.Logger
}

func NewCSVImporter(r io.Reader, w ProductWriter, logger *zap.Logger) *CSVImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		writer: w,
		logger: logger,
	}
}

type csvRow struct {
	line    int
	product domain.Product
	detail  domain.ProductDetail
	hasID   bool
}

// Run parses CSV rows and registers products grouped by id.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("read headers: id column required")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		if row.hasID {
			if current != nil {
				if err := i.save(current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows belong to the current product.
		if current != nil {
			current.product.Images = append(current.product.Images, row.product.Images...)
			current.detail.About = append(current.detail.About, row.detail.About...)
		}
	}

	if current != nil {
		if err := i.save(current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(row *csvRow) error {
	p := row.product
	if p.Name == "" || p.Price <= 0 {
		return fmt.Errorf("line %d: invalid product row (missing required fields) for id %d", row.line, p.ID)
	}
	if p.OriginalPrice == 0 {
		p.OriginalPrice = p.Price
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}

	d := row.detail
	if d.Price == 0 {
		d.Price = p.Price
	}
	if d.MRP == 0 {
		d.MRP = p.OriginalPrice
	}
	if d.Image == "" {
		d.Image = p.Image
	}

	if err := i.writer.Register(p, d); err != nil {
		return fmt.Errorf("register product %d: %w", p.ID, err)
	}
	i.logger.Debug("catalog product imported", zap.Int("id", p.ID), zap.String("name", p.Name))
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	idStr := pick(record, index, "id")
	images := splitList(pick(record, index, "images"))
	about := splitList(pick(record, index, "about"))

	if idStr == "" {
		if len(images) == 0 && len(about) == 0 {
			return nil, nil
		}
		return &csvRow{
			line:    line,
			product: domain.Product{Images: images},
			detail:  domain.ProductDetail{About: about},
		}, nil
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("line %d: invalid id %q", line, idStr)
	}
	price, err := parseAmount(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("line %d: price: %w", line, err)
	}
	mrp, err := parseAmount(pick(record, index, "mrp"))
	if err != nil {
		return nil, fmt.Errorf("line %d: mrp: %w", line, err)
	}
	details, err := parseDetails(pick(record, index, "details"))
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	sizes := splitList(pick(record, index, "sizes"))
	for k, s := range sizes {
		sizes[k] = strings.ToUpper(s)
	}

	return &csvRow{
		line:  line,
		hasID: true,
		product: domain.Product{
			ID:            id,
			Name:          pick(record, index, "name"),
			Category:      pick(record, index, "category"),
			Price:         price,
			OriginalPrice: mrp,
			Discount:      pick(record, index, "discount"),
			Colors:        splitList(strings.ToLower(pick(record, index, "colors"))),
			Image:         pick(record, index, "image"),
			Images:        images,
			Sizes:         sizes,
		},
		detail: domain.ProductDetail{
			Price:   price,
			MRP:     mrp,
			Details: details,
			About:   about,
		},
	}, nil
}

func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func parseDetails(s string) ([]domain.Attribute, error) {
	var out []domain.Attribute
	for _, entry := range splitList(s) {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid details entry %q", entry)
		}
		out = append(out, domain.Attribute{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return out, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
