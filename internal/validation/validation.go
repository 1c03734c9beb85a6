package validation

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gravadigital/community-api/internal/domain/attendance"
)

// MaxQueryLength limita el tamaño de una pregunta al asistente
const MaxQueryLength = 500

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return errors.New(fieldName + " must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	return nil
}

// ValidateUUID valida que un string sea un UUID válido
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateMonth interpreta un mes 0-11. Un valor vacío devuelve fallback.
func ValidateMonth(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 0 || month > 11 {
		return 0, errors.New("month must be an integer between 0 and 11")
	}
	return month, nil
}

// AttendanceValidation contiene validaciones específicas para RSVPs
type AttendanceValidation struct{}

// ValidateStatus acepta solo los estados que un miembro puede elegir
func (v AttendanceValidation) ValidateStatus(raw string) (attendance.Status, error) {
	if err := ValidateRequired(raw, "status"); err != nil {
		return attendance.StatusNone, err
	}
	status, ok := attendance.StatusFromString(raw)
	if !ok || !status.Storable() {
		return attendance.StatusNone, errors.New("status must be one of: going, interested")
	}
	return status, nil
}

// AssistantValidation contiene validaciones para el asistente
type AssistantValidation struct{}

// ValidateQuery valida la pregunta enviada al asistente
func (v AssistantValidation) ValidateQuery(query string) error {
	if err := ValidateRequired(query, "query"); err != nil {
		return err
	}
	return ValidateMaxLength(query, MaxQueryLength, "query")
}
