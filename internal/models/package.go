package models

// Package представляет учебный пакет из каталога: набор уроков
// с фиксированной длительностью и ценой. Записи каталога для этой
// подсистемы неизменяемы, она их только читает.
type Package struct {
	ID           int    `json:"id"`            // Идентификатор пакета
	TitleEn      string `json:"title_en"`      // Название на английском
	TitleAr      string `json:"title_ar"`      // Название на арабском
	Price        int    `json:"price"`         // Цена пакета (>= 0)
	LessonsCount int    `json:"lessons_count"` // Количество уроков (>= 1)
	DurationDays int    `json:"duration_days"` // Длительность доступа в днях (>= 1)
	IsActive     bool   `json:"is_active"`     // Доступен ли пакет для покупки
}
