package models

// Program — курс академии, по которому можно оставить заявку.
type Program struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"` // может быть NULL
}

// DescriptionText — описание без nil для шаблонов.
func (p Program) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// ProgramSeed — элемент каталога курсов для начального заполнения.
type ProgramSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
