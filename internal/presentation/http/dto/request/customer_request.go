package request

import (
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/domain/entity"
)

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (r *CreateCustomerRequest) ToInput() *service.CreateCustomerInput {
	return &service.CreateCustomerInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (r *UpdateCustomerRequest) ToInput(id string) *service.UpdateCustomerInput {
	return &service.UpdateCustomerInput{
		ID: id,
		Patch: entity.CustomerPatch{
			Name:    r.Name,
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address,
			Notes:   r.Notes,
		},
	}
}
