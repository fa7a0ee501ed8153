package realworld

import (
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RegisterUserRoutes mounts the user collection endpoints behind the
// given auth middleware.
func RegisterUserRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...UsersControllerOption) {
	controller := NewUsersController(opts...)

	group := app.Group("/users/v1")

	group.Get("/users", controller.Index, protected).SetName("users.index")
	group.Post("/users", controller.Create, protected).SetName("users.create")
	group.Get("/users/:id", controller.Show, protected).SetName("users.show")
	group.Put("/users/:id", controller.Update, protected).SetName("users.update")
	group.Patch("/users/:id", controller.Patch, protected).SetName("users.patch")
	group.Delete("/users/:id", controller.Delete, protected).SetName("users.delete")
	group.Put("/users/:id/password", controller.UpdatePassword, protected).SetName("users.password.put")
}

type UsersController struct {
	Logger  Logger
	Service *UsersService
}

type UsersControllerOption func(*UsersController) *UsersController

func NewUsersController(opts ...UsersControllerOption) *UsersController {
	c := &UsersController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing UsersService in users controller...")
	}

	return c
}

func (a *UsersController) WithLogger(l Logger) *UsersController {
	a.Logger = l
	return a
}

// CreateUserPayload registers a user together with its person record
type CreateUserPayload struct {
	Username      string `form:"username" json:"username"`
	Password      string `form:"password" json:"password"`
	PasswordCheck string `form:"password_check" json:"password_check"`
	FirstName     string `form:"first_name" json:"first_name"`
	LastName      string `form:"last_name" json:"last_name"`
}

// Validate will run validation rules
func (r CreateUserPayload) Validate() *errors.Error {
	return validatePayload(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 100)),
			validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
			validation.Field(&r.PasswordCheck, validation.Required, validation.In(r.Password).Error("passwords do not match")),
			validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		)
	}, "Invalid user registration payload")
}

// UpdateUserPayload is the full update body
type UpdateUserPayload struct {
	Username string `form:"username" json:"username"`
	Active   *bool  `form:"active" json:"active"`
	PersonID *int64 `form:"person_id" json:"person_id"`
}

// Validate will run validation rules
func (r UpdateUserPayload) Validate() *errors.Error {
	return validatePayload(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 100)),
			validation.Field(&r.Active, validation.NotNil),
		)
	}, "Invalid user payload")
}

// UpdatePasswordPayload swaps the account password
type UpdatePasswordPayload struct {
	CurrentPassword  string `form:"current_password" json:"current_password"`
	NewPassword      string `form:"new_password" json:"new_password"`
	NewPasswordCheck string `form:"new_password_check" json:"new_password_check"`
}

// Validate will run validation rules
func (r UpdatePasswordPayload) Validate() *errors.Error {
	return validatePayload(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.CurrentPassword, validation.Required),
			validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
			validation.Field(&r.NewPasswordCheck, validation.Required, validation.In(r.NewPassword).Error("passwords do not match")),
		)
	}, "Invalid password payload")
}

// Index lists users, optionally narrowed by username or active state
func (a *UsersController) Index(ctx router.Context) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	filters := UserFilters{
		Username: ctx.Query("username", ""),
	}

	if raw := ctx.Query("active", ""); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return RenderError(ctx, a.Logger, errors.New("active must be a boolean", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest))
		}
		filters.Active = &active
	}

	records, err := a.Service.List(ctx.Context(), limit, filters)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, records)
}

func (a *UsersController) Show(ctx router.Context) error {
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

func (a *UsersController) Create(ctx router.Context) error {
	payload := new(CreateUserPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("User create bind error", "error", err)
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	record, err := a.Service.CreateWithPerson(
		ctx.Context(),
		payload.Username,
		payload.Password,
		payload.FirstName,
		payload.LastName,
	)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusCreated, record)
}

func (a *UsersController) Update(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	payload := new(UpdateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	record, err := a.Service.Update(ctx.Context(), id, payload.Username, *payload.Active, payload.PersonID)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, record)
}

func (a *UsersController) Patch(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	patch := new(UserPatch)
	if err := ctx.Bind(patch); err != nil {
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	record, err := a.Service.Patch(ctx.Context(), id, *patch)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return RenderOK(ctx, http.StatusOK, record)
}

func (a *UsersController) Delete(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	if err := a.Service.Delete(ctx.Context(), id); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.Status(http.StatusNoContent).SendString("")
}

func (a *UsersController) UpdatePassword(ctx router.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	payload := new(UpdatePasswordPayload)
	if err := ctx.Bind(payload); err != nil {
		return RenderError(ctx, a.Logger, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	if err := a.Service.UpdatePassword(ctx.Context(), id, payload.CurrentPassword, payload.NewPassword); err != nil {
		return RenderError(ctx, a.Logger, err)
	}

	return ctx.Status(http.StatusNoContent).SendString("")
}
