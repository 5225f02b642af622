package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		utils.LogError(err, "CreateMenuItem: Error from menuService.CreateMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	onlyAvailable := c.Query("available") == "true"

	items, err := h.menuService.GetMenuItems(category, onlyAvailable)
	if err != nil {
		utils.LogError(err, "GetMenuItems: Error from menuService.GetMenuItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	item, err := h.menuService.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetMenuItemByID: Error from menuService.GetMenuItemByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.UpdateMenuItem(itemID, req)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdateMenuItem: Error from menuService.UpdateMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	if err := h.menuService.DeleteMenuItem(itemID); err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteMenuItem: Error from menuService.DeleteMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
