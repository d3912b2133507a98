package db_models

type Account struct {
	BaseModel
	FullName     string
	Email        string `gorm:"unique"`
	Phone        string
	PasswordHash string
}
