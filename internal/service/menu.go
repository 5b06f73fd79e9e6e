package service

import (
	"context"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *RestaurantService) Menu(ctx context.Context, id primitive.ObjectID) ([]domain.MenuSection, error) {
	r, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Menu, nil
}

// AddMenuSections appends sections. Every section needs a category; the
// first one without rejects the batch.
func (s *RestaurantService) AddMenuSections(ctx context.Context, id primitive.ObjectID, sections []domain.MenuSection) ([]domain.MenuSection, error) {
	if len(sections) == 0 {
		return nil, domain.Invalid("at least one menu section is required")
	}
	for i := range sections {
		if sections[i].Category.IsZero() {
			return nil, domain.Invalid("menu section %d: category is required", i+1)
		}
		sections[i].ID = primitive.NewObjectID()
		if sections[i].Items == nil {
			sections[i].Items = []primitive.ObjectID{}
		}
	}

	r, err := s.restaurants.AddMenuSections(ctx, id, sections)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("menu sections added", "restaurant_id", id.Hex(), "count", len(sections))

	return r.Menu, nil
}

// ImportMenu reads sections from a spreadsheet and appends them.
func (s *RestaurantService) ImportMenu(ctx context.Context, id primitive.ObjectID, spreadsheetID, readRange string) ([]domain.MenuSection, error) {
	if s.menus == nil {
		return nil, domain.Invalid("menu import is not configured")
	}
	if spreadsheetID == "" {
		return nil, domain.Invalid("spreadsheet_id is required")
	}

	if _, err := s.restaurants.GetByID(ctx, id); err != nil {
		return nil, err
	}

	sections, err := s.menus.ParseMenuSections(ctx, spreadsheetID, readRange)
	if err != nil {
		s.logger.Errorw("failed to parse menu spreadsheet", "restaurant_id", id.Hex(), "spreadsheet_id", spreadsheetID, "error", err)
		return nil, err
	}

	return s.AddMenuSections(ctx, id, sections)
}

func (s *RestaurantService) ReplaceMenuSection(ctx context.Context, id primitive.ObjectID, section domain.MenuSection) (*domain.MenuSection, error) {
	if section.Category.IsZero() {
		return nil, domain.Invalid("category is required")
	}
	if section.Items == nil {
		section.Items = []primitive.ObjectID{}
	}

	r, err := s.restaurants.ReplaceMenuSection(ctx, id, section)
	if err != nil {
		return nil, err
	}

	return findSection(r.Menu, section.ID)
}

func (s *RestaurantService) DeleteMenuSection(ctx context.Context, id, sectionID primitive.ObjectID) error {
	_, err := s.restaurants.DeleteMenuSection(ctx, id, sectionID)
	return err
}

func (s *RestaurantService) AddMenuItems(ctx context.Context, id, sectionID primitive.ObjectID, items []primitive.ObjectID) (*domain.MenuSection, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("at least one item id is required")
	}

	r, err := s.restaurants.AddMenuItems(ctx, id, sectionID, items)
	if err != nil {
		return nil, err
	}

	return findSection(r.Menu, sectionID)
}

func (s *RestaurantService) RemoveMenuItem(ctx context.Context, id, sectionID, itemID primitive.ObjectID) (*domain.MenuSection, error) {
	r, err := s.restaurants.RemoveMenuItem(ctx, id, sectionID, itemID)
	if err != nil {
		return nil, err
	}

	return findSection(r.Menu, sectionID)
}

func findSection(menu []domain.MenuSection, sectionID primitive.ObjectID) (*domain.MenuSection, error) {
	for i := range menu {
		if menu[i].ID == sectionID {
			return &menu[i], nil
		}
	}
	return nil, domain.ErrMenuSectionNotFound
}
