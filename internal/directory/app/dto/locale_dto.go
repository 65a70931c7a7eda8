package dto

// LocaleRequest тело запроса смены языка. Пустой Language означает
// выбор по заголовку Accept-Language.
type LocaleRequest struct {
	Language string `json:"language"`
}

// LocaleResponse активный и доступные языки.
type LocaleResponse struct {
	Language  string   `json:"language"`
	Available []string `json:"available"`
}

// Option значение списка выбора с подписью.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse значения для полей выбора формы.
type OptionsResponse struct {
	Positions   []Option `json:"positions"`
	Departments []Option `json:"departments"`
}
