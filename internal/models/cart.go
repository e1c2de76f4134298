package models

import "time"

// Cart представляет корзину студента. У студента есть ровно одна корзина,
// она создается лениво при первом обращении.
type Cart struct {
	ID         int       `json:"id"`          // Идентификатор корзины
	StudentUID string    `json:"student_uid"` // UID студента-владельца (уникальный)
	CreatedAt  time.Time `json:"created_at"`  // Дата создания
}

// CartItem представляет выбранный пакет в корзине. Пара (корзина, пакет)
// уникальна: пакет может лежать в корзине не более одного раза.
type CartItem struct {
	ID        int       `json:"id"`         // Идентификатор позиции
	CartID    int       `json:"cart_id"`    // Идентификатор корзины
	PackageID int       `json:"package_id"` // Идентификатор пакета
	AddedAt   time.Time `json:"added_at"`   // Когда пакет добавлен
	Package   *Package  `json:"package,omitempty"` // Данные пакета (при выдаче наружу)
}

// DummyAddCartItem используется для приёма запроса на добавление пакета в корзину.
type DummyAddCartItem struct {
	PackageID int `json:"package_id" validate:"required,gt=0"` // Идентификатор пакета
}
