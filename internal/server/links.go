package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageURL reconstructs an absolute collection URL for the given page,
// carrying the page size and any active filter.
func pageURL(c *fiber.Ctx, path string, page, perPage int, filterKey, filterVal string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if filterKey != "" && filterVal != "" {
		q.Set(filterKey, filterVal)
	}
	return c.BaseURL() + path + "?" + q.Encode()
}

// collectionLinks builds the _links block for a paginated collection:
// self always, next only when a further page exists, prev only when the
// current page is past the first and the prior page actually exists.
func collectionLinks(c *fiber.Ctx, path string, page, perPage, pages int, filterKey, filterVal string) fiber.Map {
	links := fiber.Map{
		"self": pageURL(c, path, page, perPage, filterKey, filterVal),
	}
	if page < pages {
		links["next"] = pageURL(c, path, page+1, perPage, filterKey, filterVal)
	}
	if page > 1 && page-1 <= pages {
		links["prev"] = pageURL(c, path, page-1, perPage, filterKey, filterVal)
	}
	return links
}

// itemLinks builds the action links for a single item.
func itemLinks(c *fiber.Ctx, id uint) fiber.Map {
	self := fmt.Sprintf("%s/items/%d", c.BaseURL(), id)
	return fiber.Map{
		"self":    self,
		"update":  self,
		"delete":  self,
		"reviews": self + "/subResource",
	}
}

// userLinks builds the action links for a single user.
func userLinks(c *fiber.Ctx, id uint) fiber.Map {
	self := fmt.Sprintf("%s/users/%d", c.BaseURL(), id)
	return fiber.Map{
		"self":           self,
		"update":         self,
		"delete":         self,
		"favorite_foods": self + "/subResource",
	}
}
