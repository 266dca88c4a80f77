package validation

import "fmt"

const (
	// MaxNameLen максимальная длина названия этажа или комнаты
	MaxNameLen = 128
	// MaxCapacity верхняя граница вместимости комнаты
	MaxCapacity = 1000
)

// ValidateEntityName проверяет название этажа или комнаты
func ValidateEntityName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	return nil
}

// ValidateCapacity проверяет вместимость комнаты
func ValidateCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}

	if capacity > MaxCapacity {
		return fmt.Errorf("capacity must not exceed %d", MaxCapacity)
	}

	return nil
}
