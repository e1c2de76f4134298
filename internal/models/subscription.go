package models

import "time"

// Статусы жизненного цикла подписки. Переходы:
// pending -> under_review -> approved. Статус approved терминальный,
// перехода отклонения нет — застрявшие заявки удаляет администратор.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
)

// Способы оплаты. Оплата подтверждается вручную по квитанции,
// интеграции с платёжным шлюзом нет.
const (
	PaymentBankTransfer = "bank_transfer"
	PaymentWallet       = "wallet"
	PaymentCash         = "cash"
)

// Subscription представляет заявку студента на учебный пакет,
// проходящую жизненный цикл до окна доступа [StartDate, EndDate).
//
// У студента может быть не более одной подписки на пакет в статусах
// pending, under_review или approved одновременно.
type Subscription struct {
	ID               int        `json:"id"`                          // Идентификатор подписки
	StudentUID       string     `json:"student_uid"`                 // UID студента-владельца
	PackageID        int        `json:"package_id"`                  // Идентификатор пакета
	Status           string     `json:"status"`                      // Статус жизненного цикла
	PaymentMethod    string     `json:"payment_method"`              // Способ оплаты
	WalletProvider   *string    `json:"wallet_provider,omitempty"`   // Провайдер кошелька (для wallet)
	PaymentReference *string    `json:"payment_reference,omitempty"` // Номер перевода или операции
	ReceiptKey       *string    `json:"receipt_key,omitempty"`       // Ссылка на файл квитанции в хранилище
	StartDate        *time.Time `json:"start_date,omitempty"`        // Начало окна доступа
	EndDate          *time.Time `json:"end_date,omitempty"`          // Конец окна доступа
	CreatedAt        time.Time  `json:"created_at"`                  // Дата создания
	UpdatedAt        time.Time  `json:"updated_at"`                  // Дата последнего изменения
}

// SubscriptionDetail — подписка вместе с данными студента и пакета,
// выдается администратору.
type SubscriptionDetail struct {
	Subscription
	StudentUsername string `json:"student_username"` // Имя студента
	StudentEmail    string `json:"student_email"`    // Почта студента
	PackageTitleEn  string `json:"package_title_en"` // Название пакета (англ.)
	PackageTitleAr  string `json:"package_title_ar"` // Название пакета (араб.)
	PackagePrice    int    `json:"package_price"`    // Цена пакета
}

// DummyCheckoutRequest используется для приёма запроса оформления подписки
// из JSON-запроса, до валидации.
type DummyCheckoutRequest struct {
	PackageID        int    `json:"package_id" validate:"required,gt=0"`                                // Идентификатор пакета
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=bank_transfer wallet cash"` // Способ оплаты
	WalletProvider   string `json:"wallet_provider,omitempty"`                                          // Провайдер кошелька (обязателен при wallet, проверяется в сервисе)
	PaymentReference string `json:"payment_reference,omitempty"`                                        // Номер перевода (опционально)
}

// DummyUpdateSubscription используется администратором для правки
// платёжных метаданных подписки.
type DummyUpdateSubscription struct {
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=bank_transfer wallet cash"` // Способ оплаты
	WalletProvider   string `json:"wallet_provider,omitempty"`                                          // Провайдер кошелька (обязателен при wallet)
	PaymentReference string `json:"payment_reference,omitempty"`                                        // Номер перевода
}

// ApprovalEvent публикуется в очередь уведомлений после одобрения подписки.
type ApprovalEvent struct {
	Email          string    `json:"email"`            // Почта студента
	Username       string    `json:"username"`         // Имя студента
	PackageTitleEn string    `json:"package_title_en"` // Название пакета
	EndDate        time.Time `json:"end_date"`         // Конец окна доступа
}
