package http

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// The auth gateway authenticates callers and forwards who they are in these
// headers. Roles are comma separated.
const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorRoles = "X-Actor-Roles"
)

func actorFrom(c echo.Context) (kernel.Actor, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
	if raw == "" {
		return kernel.Actor{}, errUnauthenticated
	}
	userID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthenticated, err)
	}

	var roles []kernel.Role
	for _, name := range strings.Split(c.Request().Header.Get(HeaderActorRoles), ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		role, roleErr := kernel.ParseRole(name)
		if roleErr != nil {
			return kernel.Actor{}, roleErr
		}
		roles = append(roles, role)
	}

	return kernel.NewActor(userID, roles...)
}
