package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/internal/server/repository"
	"github.com/maynagashev/ignitecall/models"
)

// Ограничения интервалов доступности.
const (
	minutesInDay  = 24 * 60
	minutesInHour = 60
	daysInWeek    = 7
)

// UserService определяет интерфейс сервиса пользователей.
type UserService interface {
	// CreateUser валидирует форму регистрации и создает пользователя.
	CreateUser(ctx context.Context, name, username string) (*models.User, error)
	// GetProfile возвращает пользователя по имени.
	GetProfile(ctx context.Context, username string) (*models.User, error)
	// SetTimeIntervals заменяет интервалы доступности пользователя.
	SetTimeIntervals(ctx context.Context, userID int64, intervals []models.TimeInterval) error
}

// Убедимся, что userService удовлетворяет интерфейсу UserService.
var _ UserService = (*userService)(nil)

type userService struct {
	userRepo     repository.UserRepository
	intervalRepo repository.TimeIntervalRepository
}

// NewUserService создает новый экземпляр сервиса пользователей.
func NewUserService(userRepo repository.UserRepository, intervalRepo repository.TimeIntervalRepository) UserService {
	return &userService{userRepo: userRepo, intervalRepo: intervalRepo}
}

// CreateUser создает пользователя. Имя пользователя приводится к нижнему регистру.
// Ошибки валидации возвращаются как forms.FieldErrors.
func (s *userService) CreateUser(ctx context.Context, name, username string) (*models.User, error) {
	form := &forms.RegisterForm{Username: username, Name: name}
	if err := forms.Validate(form); err != nil {
		log.Printf("[UserService] Невалидная форма регистрации '%s': %v", username, err)
		return nil, err
	}

	user := &models.User{Username: form.Username, Name: form.Name}
	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		log.Printf("[UserService] Ошибка репозитория при регистрации '%s': %v", form.Username, err)
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	user.ID = id

	log.Printf("[UserService] Пользователь '%s' зарегистрирован", user.Username)
	return user, nil
}

// GetProfile возвращает пользователя по имени (без учета регистра).
func (s *userService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

// SetTimeIntervals проверяет и сохраняет интервалы доступности.
func (s *userService) SetTimeIntervals(ctx context.Context, userID int64, intervals []models.TimeInterval) error {
	if len(intervals) == 0 {
		return fmt.Errorf("%w: нужен хотя бы один интервал", ErrInvalidInterval)
	}
	for _, in := range intervals {
		if err := validateInterval(in); err != nil {
			return err
		}
	}

	if err := s.intervalRepo.ReplaceTimeIntervals(ctx, userID, intervals); err != nil {
		log.Printf("[UserService] Ошибка сохранения интервалов пользователя %d: %v", userID, err)
		return fmt.Errorf("ошибка сохранения интервалов: %w", err)
	}
	return nil
}

// validateInterval проверяет один интервал: день недели 0..6, начало раньше конца,
// границы внутри суток и кратны часу.
func validateInterval(in models.TimeInterval) error {
	switch {
	case in.WeekDay < 0 || in.WeekDay >= daysInWeek:
		return fmt.Errorf("%w: день недели %d", ErrInvalidInterval, in.WeekDay)
	case in.StartTimeInMinutes < 0 || in.EndTimeInMinutes > minutesInDay:
		return fmt.Errorf("%w: время вне суток", ErrInvalidInterval)
	case in.StartTimeInMinutes >= in.EndTimeInMinutes:
		return fmt.Errorf("%w: начало должно быть раньше конца", ErrInvalidInterval)
	case in.StartTimeInMinutes%minutesInHour != 0 || in.EndTimeInMinutes%minutesInHour != 0:
		return fmt.Errorf("%w: время должно быть кратно часу", ErrInvalidInterval)
	}
	return nil
}
