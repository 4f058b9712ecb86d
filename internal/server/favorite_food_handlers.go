package server

import (
	"fmt"

	"tasteboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultFoodsPerPage = 10

// GetUserFavoriteFoods handles GET /users/:id/subResource.
func (s *Server) GetUserFavoriteFoods(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return respondDBError(c, err, "User", userID)
	}

	page := parsePageQuery(c, defaultFoodsPerPage)
	foods, total, pages, err := s.foodRepo.ListByUser(ctx, userID, page.Page, page.PerPage)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	serialized := make([]fiber.Map, 0, len(foods))
	for _, food := range foods {
		serialized = append(serialized, food.Serialize())
	}

	path := fmt.Sprintf("/users/%d/subResource", userID)
	return c.JSON(fiber.Map{
		"user_id":        userID,
		"favorite_foods": serialized,
		"total":          total,
		"pages":          pages,
		"_links":         collectionLinks(c, path, page.Page, page.PerPage, pages, "", ""),
	})
}

// CreateUserFavoriteFood handles POST /users/:id/subResource.
func (s *Server) CreateUserFavoriteFood(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return respondDBError(c, err, "User", userID)
	}

	var req struct {
		FoodName *string `json:"food_name"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.FoodName == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing food_name field"))
	}

	food := &models.FavoriteFood{
		UserID:   userID,
		FoodName: *req.FoodName,
	}
	if err := s.foodRepo.Create(ctx, food); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Favorite food created!",
		"favorite_food": food.Serialize(),
	})
}

// DeleteUserFavoriteFood handles DELETE /users/:id/subResource/:foodId.
func (s *Server) DeleteUserFavoriteFood(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}
	foodID, err := parseID(c, "foodId", "favorite food ID")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return respondDBError(c, err, "User", userID)
	}

	food, err := s.foodRepo.GetForUser(ctx, userID, foodID)
	if err != nil {
		return respondDBError(c, err, "Favorite food", foodID)
	}

	if err := s.foodRepo.Delete(ctx, food.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"message": "Favorite food deleted successfully!"})
}
