package services

import (
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

// MenuItemRequest is used for creating and updating menu items.
type MenuItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Category        string  `json:"category" binding:"required"`
	Available       *bool   `json:"available"`
	PreparationTime int     `json:"preparation_time"`
}

type MenuService interface {
	CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	GetMenuItems(category *string, onlyAvailable bool) ([]models.MenuItem, error)
	UpdateMenuItem(itemID int64, req MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(itemID int64) error
}

type menuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository) MenuService {
	return &menuService{menuRepo: mr}
}

func (s *menuService) CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Available:       true,
		PreparationTime: req.PreparationTime,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if _, err := s.menuRepo.CreateMenuItem(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) GetMenuItems(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetMenuItems(category, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) UpdateMenuItem(itemID int64, req MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.GetMenuItemByID(itemID)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.PreparationTime = req.PreparationTime
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := s.menuRepo.UpdateMenuItem(item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(itemID int64) error {
	if err := s.menuRepo.DeleteMenuItem(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}
