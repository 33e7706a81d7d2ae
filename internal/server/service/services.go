package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"userdesk/internal/server/events"
	"userdesk/internal/server/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Repository interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Services struct {
	Users *UsersService
}

func NewServices(repo Repository, publisher events.Publisher, logger *slog.Logger) *Services {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Services{
		Users: &UsersService{repo: repo, events: publisher, logger: logger},
	}
}

// ValidationError reports a request body the service refuses to store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// UsersService validates user input, persists it and announces
// creations and deletions on the event stream.
type UsersService struct {
	repo   Repository
	events events.Publisher
	logger *slog.Logger
}

func (s *UsersService) Create(ctx context.Context, in models.UserInput) (models.User, error) {
	u, err := checkInput(in)
	if err != nil {
		return models.User{}, err
	}
	s.logger.Info("creating user", "email", u.Email)
	created, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	s.publish(ctx, models.UserEventCreate, created.Email)
	return created, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UsersService) Update(ctx context.Context, id int64, in models.UserInput) (models.User, error) {
	u, err := checkInput(in)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	s.logger.Info("updating user", "id", id)
	return s.repo.UpdateUser(ctx, u)
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("deleting user", "id", id)
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, models.UserEventDelete, u.Email)
	return nil
}

// publish never fails the request; the user change is already committed.
func (s *UsersService) publish(ctx context.Context, typ models.UserEventType, email string) {
	if err := s.events.Publish(ctx, typ, email); err != nil {
		s.logger.Warn("user event not published", "type", typ, "error", err)
	}
}

// checkInput trims the text fields and runs the struct rules on the result.
func checkInput(in models.UserInput) (models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return models.User{}, toValidationError(fieldErrs[0])
		}
		return models.User{}, err
	}
	return models.User{Name: in.Name, Email: in.Email, Age: *in.Age}, nil
}

func toValidationError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: field + " is required"}
	case "email":
		return &ValidationError{Field: field, Message: field + " is invalid"}
	case "min", "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must be between 0 and 150", field)}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s failed %s", field, fe.Tag())}
}
