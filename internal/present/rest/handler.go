package rest

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/hateoas-playground/internal/present/rest/presenter"
	"github.com/totegamma/hateoas-playground/internal/usecase"
)

type Handler struct {
	users  *usecase.UserUsecase
	groups *usecase.GroupUsecase
}

func NewHandler(
	users *usecase.UserUsecase,
	groups *usecase.GroupUsecase,
) *Handler {
	return &Handler{
		users:  users,
		groups: groups,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleUserIndex)
	e.GET("/users", h.handleUserIndex)
	e.GET("/users/:id", h.handleUser)
	e.GET("/users/:id/profile", h.handleUserProfile)
	e.GET("/users/:id/groups", h.handleUserGroups)
	e.GET("/groups", h.handleGroupIndex)
	e.GET("/groups/:name", h.handleGroup)
	e.GET("/groups/:name/users", h.handleGroupUsers)
	e.GET("/healthz", h.handleHealth)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) handleUserIndex(c echo.Context) error {
	body, err := h.users.Index(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	body, err := h.users.Show(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleUserProfile(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	body, err := h.users.Profile(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleUserGroups(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid user id")
	}

	body, err := h.users.Groups(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleGroupIndex(c echo.Context) error {
	body, err := h.groups.Index(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleGroup(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid group name")
	}

	body, err := h.groups.Show(c.Request().Context(), name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

func (h *Handler) handleGroupUsers(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid group name")
	}

	body, err := h.groups.Users(c.Request().Context(), name)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, body)
}

// userID accepts only the canonical form used in links, so the served self
// href always equals the requested path.
func userID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if id.String() != raw {
		return uuid.Nil, errors.Errorf("non-canonical user id %q", raw)
	}
	return id, nil
}

// pathParam returns the decoded value of a path parameter. echo matches on the
// raw path when the request carries escaped characters, leaving them escaped.
func pathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}
