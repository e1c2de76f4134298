// Package models содержит доменные структуры портала языковой школы,
// а также вспомогательные типы для приёма данных из внешних источников
// (например, JSON-запросы).
package models

import "time"

// Роли пользователей портала.
const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleAssistant = "assistant"
	RoleAdmin     = "admin"
)

// User представляет зарегистрированного пользователя портала.
//
// Поле IsActive открывает доступ к запланированным занятиям: новые студенты
// регистрируются неактивными и активируются только при одобрении подписки
// администратором.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль: student, teacher, assistant или admin
	IsActive     bool      // Доступ к занятиям
	CreatedAt    time.Time // Дата регистрации
}

// DummyRegisterRequest используется для приёма данных регистрации из JSON-запроса.
type DummyRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required,min=8"`    // Пароль (не короче 8 символов)
}

// DummyLoginRequest используется для приёма данных авторизации из JSON-запроса.
type DummyLoginRequest struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}
