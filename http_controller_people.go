package realworld

import (
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RegisterPeopleRoutes mounts the person collection endpoints
func RegisterPeopleRoutes[T any](app router.Router[T], opts ...PeopleControllerOption) {
	controller := NewPeopleController(opts...)

	group := app.Group("/people/v1")

	group.Get("/people", controller.Index).SetName("people.index")
	group.Post("/people", controller.Create).SetName("people.create")
	group.Get("/people/:id", controller.Show).SetName("people.show")
	group.Put("/people/:id", controller.Update).SetName("people.update")
	group.Patch("/people/:id", controller.Patch).SetName("people.patch")
	group.Delete("/people/:id", controller.Delete).SetName("people.delete")
}

type PeopleController struct {
	Logger  Logger
	Service *PeopleService
}

type PeopleControllerOption func(*PeopleController) *PeopleController

func NewPeopleController(opts ...PeopleControllerOption) *PeopleController {
	c := &PeopleController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing PeopleService in people controller...")
	}

	return c
}

func (a *PeopleController) WithLogger(l Logger) *PeopleController {
	a.Logger = l
	return a
}

// PersonPayload is the create and full update body
type PersonPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

// Validate will run validation rules
func (r PersonPayload) Validate() *errors.Error {
	return validatePayload(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		)
	}, "Invalid person payload")
}

// Index lists people, optionally narrowed by exact name matches
func (a *PeopleController) Index(ctx router.Context) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	filters := PersonFilters{
		FirstName: ctx.Query("first_name", ""),
		LastName:  ctx.Query("last_name", ""),
	}

	records, err := a.Service.List(ctx.Context(), limit, filters)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, records)
}

func (a *PeopleController) Show(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	record, err := a.Service.Get(ctx.Context(), id)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, record)
}

func (a *PeopleController) Create(ctx router.Context) error {
	payload := new(PersonPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("Person create bind error", "error", err)
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	record, err := a.Service.Create(ctx.Context(), payload.FirstName, payload.LastName)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusCreated, record)
}

func (a *PeopleController) Update(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	payload := new(PersonPayload)
	if err := ctx.Bind(payload); err != nil {
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	record, err := a.Service.Update(ctx.Context(), id, payload.FirstName, payload.LastName)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, record)
}

func (a *PeopleController) Patch(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	patch := new(PersonPatch)
	if err := ctx.Bind(patch); err != nil {
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	record, err := a.Service.Patch(ctx.Context(), id, *patch)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, record)
}

func (a *PeopleController) Delete(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	if err := a.Service.Delete(ctx.Context(), id); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.Status(http.StatusNoContent).SendString("")
}

// paramID parses the numeric id path parameter
func paramID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id", "")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"id": raw})
	}
	return id, nil
}

// queryLimit parses the optional limit query parameter
func queryLimit(ctx router.Context) (int, error) {
	raw := ctx.Query("limit", "")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"limit": raw})
	}

	return limit, nil
}
