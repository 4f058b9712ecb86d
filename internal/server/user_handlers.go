package server

import (
	"errors"
	"fmt"

	"tasteboard/internal/async"
	"tasteboard/internal/cache"
	"tasteboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultUsersPerPage = 10

// GetUsers handles GET /users?page&per_page&username.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePageQuery(c, defaultUsersPerPage)
	usernameFilter := c.Query("username")

	users, total, pages, err := s.userRepo.List(ctx, page.Page, page.PerPage, usernameFilter)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	serialized := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		serialized = append(serialized, user.Serialize())
	}

	return c.JSON(fiber.Map{
		"users":  serialized,
		"total":  total,
		"pages":  pages,
		"_links": collectionLinks(c, "/users", page.Page, page.PerPage, pages, "username", usernameFilter),
	})
}

// CreateUser handles POST /users. Account creation triggers the user-created
// workflow as a detached side effect; the 201 never waits on it.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == nil || req.Email == nil || req.Password == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing required fields"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	user := &models.User{
		Username: *req.Username,
		Email:    *req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("Username or email already exists"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	s.workflow.UserCreated(user.ID, user.Username, user.Email)

	location := fmt.Sprintf("%s/users/%d", c.BaseURL(), user.ID)
	c.Set(fiber.HeaderLocation, location)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      user.ID,
		"message": "User created!",
		"_links":  userLinks(c, user.ID),
	})
}

// GetUser handles GET /users/:id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return respondDBError(c, err, "User", id)
	}

	return c.JSON(user.Serialize())
}

// UpdateUser handles PUT /users/:id, scheduling the deferred email update.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return respondDBError(c, err, "User", id)
	}

	var req struct {
		Email *string `json:"email"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Bad request, missing email field"))
	}

	s.updater.Schedule(async.Update{
		Entity:   "user",
		Model:    &models.User{},
		ID:       id,
		Column:   "email",
		Value:    *req.Email,
		CacheKey: cache.UserKey(id),
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "User update accepted",
	})
}

// DeleteUser handles DELETE /users/:id, cascading the user's favorite foods.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return respondDBError(c, err, "User", id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
