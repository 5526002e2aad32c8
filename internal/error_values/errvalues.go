package errorvalues

import "errors"

var (
	ErrUsernameTaken    = errors.New("username already registered")
	ErrEmailTaken       = errors.New("email already registered")
	ErrWeakPassword     = errors.New("password must be at least 6 characters")
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrPermissionDenied = errors.New("permission denied")

	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyContent     = errors.New("content must not be empty")
	ErrInvalidTimeRange = errors.New("end time must be later than start time")
	ErrTimeSlotConflict = errors.New("time slot overlaps another task on that day")

	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryNotFound  = errors.New("category doesn't exist")
	ErrTaskNotFound      = errors.New("task doesn't exist")
	ErrPlanNotFound      = errors.New("plan doesn't exist")
	ErrReviewNotFound    = errors.New("review doesn't exist")
	ErrScheduleNotFound  = errors.New("schedule doesn't exist")

	ErrInvalidToken = errors.New("token is invalid")
	ErrValidation   = errors.New("validation failed")
)
