package models

// Admin — запись из таблицы admins.
// В поле Password лежит bcrypt-хэш, открытый пароль в базу не попадает.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
