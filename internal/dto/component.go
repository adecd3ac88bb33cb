package dto

import (
	"github.com/paycove/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateComponentRequest defines the payload for adding a catalog component.
type CreateComponentRequest struct {
	Name            string          `json:"name" binding:"required"`
	ComponentType   string          `json:"componentType" binding:"required"`
	CalculationType string          `json:"calculationType" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	IsTaxable       bool            `json:"isTaxable"`
	IsPretax        bool            `json:"isPretax"`
	IsMandatory     bool            `json:"isMandatory"`
	SortOrder       int             `json:"sortOrder"`
}

// UpdateComponentRequest defines the mutable fields of a component. Nil
// fields are left unchanged.
type UpdateComponentRequest struct {
	Name        *string          `json:"name,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsTaxable   *bool            `json:"isTaxable,omitempty"`
	IsPretax    *bool            `json:"isPretax,omitempty"`
	IsMandatory *bool            `json:"isMandatory,omitempty"`
	SortOrder   *int             `json:"sortOrder,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// ComponentResponse defines the data returned for a catalog component.
type ComponentResponse struct {
	ComponentID     string          `json:"componentID"`
	Name            string          `json:"name"`
	ComponentType   string          `json:"componentType"`
	CalculationType string          `json:"calculationType"`
	Amount          decimal.Decimal `json:"amount"`
	Percentage      decimal.Decimal `json:"percentage"`
	IsTaxable       bool            `json:"isTaxable"`
	IsPretax        bool            `json:"isPretax"`
	IsMandatory     bool            `json:"isMandatory"`
	SortOrder       int             `json:"sortOrder"`
	IsActive        bool            `json:"isActive"`
}

// ToComponentResponse converts a domain.PayrollComponent to ComponentResponse.
func ToComponentResponse(c *domain.PayrollComponent) ComponentResponse {
	return ComponentResponse{
		ComponentID:     c.ComponentID,
		Name:            c.Name,
		ComponentType:   string(c.ComponentType),
		CalculationType: string(c.CalculationType),
		Amount:          c.Amount,
		Percentage:      c.Percentage,
		IsTaxable:       c.IsTaxable,
		IsPretax:        c.IsPretax,
		IsMandatory:     c.IsMandatory,
		SortOrder:       c.SortOrder,
		IsActive:        c.IsActive,
	}
}

// ToComponentResponses converts a slice of components.
func ToComponentResponses(cs []domain.PayrollComponent) []ComponentResponse {
	out := make([]ComponentResponse, len(cs))
	for i := range cs {
		out[i] = ToComponentResponse(&cs[i])
	}
	return out
}
