package models

import "time"

// User представляет профиль пользователя, полученный от backend.
// Профиль заменяется целиком при каждой успешной аутентификации
// и никогда не изменяется клиентом частично.
type User struct {
	CreatedAt time.Time `json:"createdAt"`        // время создания
	UpdatedAt time.Time `json:"updatedAt"`        // время последнего обновления
	ID        string    `json:"id"`               // идентификатор пользователя
	Name      string    `json:"name"`             // отображаемое имя
	Email     string    `json:"email"`            // email
	Phone     string    `json:"phone"`            // телефон в формате E.164
	Avatar    string    `json:"avatar,omitempty"` // URL аватара (опционально)
}

// DisplayName возвращает имя для отображения, при пустом имени - телефон
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Phone
}
