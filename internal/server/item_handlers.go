package server

import (
	"fmt"

	"tasteboard/internal/async"
	"tasteboard/internal/cache"
	"tasteboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultItemsPerPage = 10

// GetItems handles GET /items?page&per_page&name.
func (s *Server) GetItems(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageQuery(c, defaultItemsPerPage)
	nameFilter := c.Query("name")

	items, total, pages, err := s.itemRepo.List(ctx, page.Page, page.PerPage, nameFilter)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	serialized := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		serialized = append(serialized, item.Serialize())
	}

	return c.JSON(fiber.Map{
		"items":  serialized,
		"total":  total,
		"pages":  pages,
		"_links": collectionLinks(c, "/items", page.Page, page.PerPage, pages, "name", nameFilter),
	})
}

// CreateItem handles POST /items.
func (s *Server) CreateItem(c *fiber.Ctx) error {
	ctx := c.Context()

	// Pointer fields distinguish an absent key from an empty value.
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing name field"))
	}

	item := &models.Item{Name: *req.Name}
	if req.Description != nil {
		item.Description = *req.Description
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	location := fmt.Sprintf("%s/items/%d", c.BaseURL(), item.ID)
	c.Set(fiber.HeaderLocation, location)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      item.ID,
		"message": "Item created!",
		"_links":  itemLinks(c, item.ID),
	})
}

// GetItem handles GET /items/:id.
func (s *Server) GetItem(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return respondDBError(c, err, "Item", id)
	}

	return c.JSON(item.Serialize())
}

// UpdateItem handles PUT /items/:id. The description change is applied by a
// background worker after a delay; the handler only verifies the item exists
// and the field is present, then answers 202 without waiting.
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}

	if _, err := s.itemRepo.GetByID(ctx, id); err != nil {
		return respondDBError(c, err, "Item", id)
	}

	var req struct {
		Description *string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Description == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing description field"))
	}

	s.updater.Schedule(async.Update{
		Entity:   "item",
		Model:    &models.Item{},
		ID:       id,
		Column:   "description",
		Value:    *req.Description,
		CacheKey: cache.ItemKey(id),
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Item update accepted",
	})
}

// DeleteItem handles DELETE /items/:id, cascading the item's reviews.
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return respondDBError(c, err, "Item", id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
