package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/caltrain/pkg/ctdf"
	"github.com/travigo/caltrain/pkg/dataaggregator"
	"github.com/travigo/caltrain/pkg/dataaggregator/query"
)

const dateLayout = "2006-01-02"

func ConnectionsRouter(router fiber.Router) {
	router.Get("/", listConnections)
}

func listConnections(c *fiber.Ctx) error {
	fromStop := c.Query("from")
	toStop := c.Query("to")

	if fromStop == "" || toStop == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Both from and to stops must be given",
		})
	}

	date := time.Now()
	if dateString := c.Query("date"); dateString != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, dateString, time.Local)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Date must be formatted as YYYY-MM-DD",
			})
		}
	}

	dayType := ctdf.ClassifyDate(date)
	if dayTypeString := c.Query("day_type"); dayTypeString != "" {
		var err error
		dayType, err = ctdf.ParseDayType(dayTypeString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	connections, err := dataaggregator.Lookup[[]ctdf.Connection](c.UserContext(), query.Connections{
		DayType:  dayType,
		FromStop: fromStop,
		ToStop:   toStop,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	connectionsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, connections)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Connections",
		})
	}

	return c.JSON(fiber.Map{
		"from":        fromStop,
		"to":          toStop,
		"day_type":    dayType,
		"connections": connectionsReduced,
	})
}
