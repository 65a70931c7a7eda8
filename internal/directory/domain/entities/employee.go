// Package entities содержит доменные сущности справочника сотрудников.
package entities

// Employee запись о сотруднике. ID назначается хранилищем и не меняется.
type Employee struct {
	ID               int    `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
}

// EmployeeInput поля сотрудника без идентификатора.
type EmployeeInput struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DateOfBirth      string `json:"dateOfBirth"`
}

// Input возвращает изменяемые поля записи.
func (e Employee) Input() EmployeeInput {
	return EmployeeInput{
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Position:         e.Position,
		DateOfEmployment: e.DateOfEmployment,
		DateOfBirth:      e.DateOfBirth,
	}
}

// FullName возвращает имя и фамилию через пробел.
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ToEmployee собирает запись с указанным идентификатором.
func (in EmployeeInput) ToEmployee(id int) Employee {
	return Employee{
		ID:               id,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Department:       in.Department,
		Position:         in.Position,
		DateOfEmployment: in.DateOfEmployment,
		DateOfBirth:      in.DateOfBirth,
	}
}

// Field возвращает значение поля по его JSON-имени.
func (in EmployeeInput) Field(name string) (string, bool) {
	switch name {
	case FieldFirstName:
		return in.FirstName, true
	case FieldLastName:
		return in.LastName, true
	case FieldEmail:
		return in.Email, true
	case FieldPhone:
		return in.Phone, true
	case FieldDepartment:
		return in.Department, true
	case FieldPosition:
		return in.Position, true
	case FieldDateOfEmployment:
		return in.DateOfEmployment, true
	case FieldDateOfBirth:
		return in.DateOfBirth, true
	}
	return "", false
}

// Имена полей сотрудника.
const (
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldDepartment       = "department"
	FieldPosition         = "position"
	FieldDateOfEmployment = "dateOfEmployment"
	FieldDateOfBirth      = "dateOfBirth"
)

// Fields перечисляет поля в порядке формы.
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldDepartment,
	FieldPosition,
	FieldDateOfEmployment,
	FieldDateOfBirth,
}
