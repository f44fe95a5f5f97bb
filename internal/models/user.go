// Package models содержит доменные структуры леджера: пользователя,
// транзакцию, займ и профиль накоплений, а также вспомогательные
// Dummy-типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Email — естественный ключ, которым помечены все финансовые записи.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}
