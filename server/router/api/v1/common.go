package v1

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return int32(id), nil
}

func pathID(c echo.Context, name string) (int32, error) {
	id, err := parseID(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}
