package domain

import "wastehub/internal/model"

// transitions описывает допустимые переходы статусов заявки.
// Терминальные статусы (COMPLETED, CANCELLED) отсутствуют в таблице.
var transitions = map[string][]string{
	model.RequestStatusPending:    {model.RequestStatusAccepted, model.RequestStatusCancelled},
	model.RequestStatusAccepted:   {model.RequestStatusInProgress, model.RequestStatusCompleted},
	model.RequestStatusInProgress: {model.RequestStatusCompleted},
}

// CanTransition проверяет допустимость перехода from → to
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal проверяет, является ли статус терминальным
func IsTerminal(status string) bool {
	return status == model.RequestStatusCompleted || status == model.RequestStatusCancelled
}

// ValidStatus проверяет, что строка — известный статус заявки
func ValidStatus(status string) bool {
	switch status {
	case model.RequestStatusPending,
		model.RequestStatusAccepted,
		model.RequestStatusInProgress,
		model.RequestStatusCompleted,
		model.RequestStatusCancelled:
		return true
	}
	return false
}
