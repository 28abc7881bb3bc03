package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/caltrain/pkg/dataaggregator"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
)

func StopsRouter(router fiber.Router) {
	router.Get("/", listStops)
}

func listStops(c *fiber.Ctx) error {
	stops, err := dataaggregator.Lookup[[]string](c.UserContext(), query.Stops{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stops)
}
