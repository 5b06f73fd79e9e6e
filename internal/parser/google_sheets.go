package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsFile string
}

func New(ctx context.Context, cfg Config) (*GoogleSheetsParser, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

// ParseMenuSections reads a sheet laid out as
//
//	category_id | item_ids
//	<hex>       | <hex>,<hex>,...
//
// with a header row. readRange defaults to the first two columns.
func (p *GoogleSheetsParser) ParseMenuSections(ctx context.Context, spreadsheetID, readRange string) ([]domain.MenuSection, error) {
	if readRange == "" {
		readRange = "A:B"
	}

	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	return SectionsFromRows(resp.Values)
}

// SectionsFromRows converts sheet rows to menu sections, skipping the header
// and blank rows. A row with a bad id rejects the whole sheet.
func SectionsFromRows(rows [][]interface{}) ([]domain.MenuSection, error) {
	if len(rows) < 2 {
		return nil, domain.Invalid("no menu sections found in spreadsheet")
	}

	sections := []domain.MenuSection{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || cell(row, 0) == "" {
			continue
		}

		category, err := primitive.ObjectIDFromHex(cell(row, 0))
		if err != nil {
			return nil, domain.Invalid("row %d: invalid category id %q", i+1, cell(row, 0))
		}

		section := domain.MenuSection{
			ID:       primitive.NewObjectID(),
			Category: category,
			Items:    []primitive.ObjectID{},
		}

		for _, raw := range strings.Split(cell(row, 1), ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			item, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, domain.Invalid("row %d: invalid item id %q", i+1, raw)
			}
			section.Items = append(section.Items, item)
		}

		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return nil, domain.Invalid("no menu sections found in spreadsheet")
	}

	return sections, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}
