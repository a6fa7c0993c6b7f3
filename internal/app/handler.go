package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/quillback/pointsboard/internal/app/component"
	"github.com/quillback/pointsboard/internal/sec"
	"github.com/quillback/pointsboard/internal/storage"
	"github.com/quillback/pointsboard/internal/storage/db"
)

type handler struct {
	store storage.Persons
}

func (h handler) register(e *echo.Echo) {
	e.GET("/", h.dashboard)
	e.GET("/persons", h.listPersons)

	admin := e.Group("", requireAdmin)
	admin.POST("/add_person", h.addPerson)
	admin.POST("/update_points", h.updatePoints)
}

// requireAdmin rejects authenticated callers that do not hold the admin role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !sec.GetIdentity(c.Request().Context()).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admins only")
		}
		return next(c)
	}
}

// personResponse is the wire form of a person. The surrogate row ID is
// storage-internal and never exposed.
type personResponse struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

func toPersonResponse(p db.Person) personResponse {
	return personResponse{Name: p.Name, Points: p.Points}
}

type addPersonRequest struct {
	Name string `json:"name"`
}

type updatePointsRequest struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

func (h handler) dashboard(c echo.Context) error {
	id := sec.GetIdentity(c.Request().Context())
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return render(
		c.Request().Context(),
		component.Dashboard(id),
		c.Response().Writer,
	)
}

func (h handler) listPersons(c echo.Context) error {
	persons, err := h.store.ListPersons(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]personResponse, 0, len(persons))
	for _, p := range persons {
		resp = append(resp, toPersonResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h handler) addPerson(c echo.Context) error {
	var req addPersonRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	person, err := h.store.CreatePerson(c.Request().Context(), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPersonResponse(person))
}

func (h handler) updatePoints(c echo.Context) error {
	var req updatePointsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	person, err := h.store.UpdatePoints(c.Request().Context(), req.Name, req.Points)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPersonResponse(person))
}

// toHTTPError converts storage errors to Echo HTTPErrors with the
// appropriate status code. Anything that is not a recognized storage
// condition passes through unchanged and surfaces as a 500, rather than
// being folded into a client error.
func toHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusBadRequest, "person already exists")
	case errors.Is(err, storage.ErrInvalidName):
		return echo.NewHTTPError(http.StatusBadRequest, storage.ErrInvalidName.Error())
	case errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "person not found")
	default:
		return err
	}
}

var renderBufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func render(ctx context.Context, component templ.Component, w io.Writer) error {
	buf := renderBufferPool.Get().(*bytes.Buffer) //nolint:forcetypeassert // guaranteed by impl
	defer renderBufferPool.Put(buf)
	buf.Reset()

	if err := component.Render(ctx, buf); err != nil {
		return err
	}
	_, err := io.Copy(w, buf)
	return err
}
