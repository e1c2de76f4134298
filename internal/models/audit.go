package models

import "time"

// AuditEntry — строка журнала административных действий.
// Журнал только пополняется: записи никогда не изменяются и не удаляются.
type AuditEntry struct {
	ID        int       `json:"id"`         // Идентификатор записи
	Action    string    `json:"action"`     // Тип действия, например subscription.approve
	ActorUID  string    `json:"actor_uid"`  // UID администратора, выполнившего действие
	Details   string    `json:"details"`    // Человеко-читаемое описание
	CreatedAt time.Time `json:"created_at"` // Время действия
}
