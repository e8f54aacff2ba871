package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPregnancyNotFound = errors.New("pregnancy not found")
	ErrVisitNotFound     = errors.New("hospital visit not found")
	ErrSymptomNotFound   = errors.New("symptom not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrBabyNotFound      = errors.New("baby not found")
	ErrWeekNotFound      = errors.New("week info not found")
	ErrNotOwner          = errors.New("pregnancy belongs to another user")
	ErrActiveRequest     = errors.New("a message is already being sent")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrChatDisabled      = errors.New("chat assistant is not configured")
)
