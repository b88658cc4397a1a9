package dto

import "github.com/GlebRadaev/bankledger/internal/domain"

type RegisterUserRequestDTO struct {
	FullName  string `json:"full_name"  validate:"required,max=120"  example:"Ana Lima"`
	BirthDate string `json:"birth_date" validate:"required,birthdate" example:"01-02-1990"`
	TaxID     string `json:"tax_id"     validate:"required,number"   example:"12345678900"`
	Address   string `json:"address"    validate:"required,max=255"  example:"Rua A, 1 - Centro - Recife/PE"`
}

type UserResponseDTO struct {
	FullName  string `json:"full_name" example:"Ana Lima"`
	BirthDate string `json:"birth_date" example:"01-02-1990"`
	TaxID     string `json:"tax_id" example:"12345678900"`
	Address   string `json:"address" example:"Rua A, 1 - Centro - Recife/PE"`
}

func NewUserResponse(u *domain.User) UserResponseDTO {
	return UserResponseDTO{
		FullName:  u.FullName,
		BirthDate: u.BirthDate,
		TaxID:     u.TaxID,
		Address:   u.Address,
	}
}
