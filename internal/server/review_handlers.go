package server

import (
	"fmt"

	"tasteboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultReviewsPerPage = 10

// GetItemReviews handles GET /items/:id/subResource.
func (s *Server) GetItemReviews(c *fiber.Ctx) error {
	ctx := c.Context()
	itemID, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return respondDBError(c, err, "Item", itemID)
	}

	page := parsePageQuery(c, defaultReviewsPerPage)
	reviews, total, pages, err := s.reviewRepo.ListByItem(ctx, itemID, page.Page, page.PerPage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	serialized := make([]fiber.Map, 0, len(reviews))
	for _, review := range reviews {
		serialized = append(serialized, review.Serialize())
	}

	path := fmt.Sprintf("/items/%d/subResource", itemID)
	return c.JSON(fiber.Map{
		"item_id": itemID,
		"reviews": serialized,
		"total":   total,
		"pages":   pages,
		"_links":  collectionLinks(c, path, page.Page, page.PerPage, pages, "", ""),
	})
}

// CreateItemReview handles POST /items/:id/subResource. After the review is
// committed, the external notification endpoint is informed on a best-effort
// basis; its outcome does not affect the 201.
func (s *Server) CreateItemReview(c *fiber.Ctx) error {
	ctx := c.Context()
	itemID, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return respondDBError(c, err, "Item", itemID)
	}

	var req struct {
		Review *string `json:"review"`
		Rating *int    `json:"rating"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Review == nil || req.Rating == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing review or rating"))
	}

	review := &models.Review{
		ItemID: itemID,
		Review: *req.Review,
		Rating: *req.Rating,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	s.reviewWebhook.Notify(ctx, itemID, review.Review, review.Rating)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created!",
		"review":  review.Serialize(),
	})
}

// DeleteItemReview handles DELETE /items/:id/subResource/:reviewId.
func (s *Server) DeleteItemReview(c *fiber.Ctx) error {
	ctx := c.Context()
	itemID, err := parseID(c, "id", "item ID")
	if err != nil {
		return nil
	}
	reviewID, err := parseID(c, "reviewId", "review ID")
	if err != nil {
		return nil
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return respondDBError(c, err, "Item", itemID)
	}

	review, err := s.reviewRepo.GetForItem(ctx, itemID, reviewID)
	if err != nil {
		return respondDBError(c, err, "Review", reviewID)
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"message": "Review deleted successfully!"})
}
