package request

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	PropertyAddress string          `json:"propertyAddress"`
	ContractPrice   decimal.Decimal `json:"contractPrice"`
	TotalServiceFee decimal.Decimal `json:"totalServiceFee"`
	ListingAgentID  string          `json:"listingAgentId"`
	SellingAgentID  string          `json:"sellingAgentId"`
}

type UpdateTransactionRequest struct {
	PropertyAddress *string          `json:"propertyAddress,omitempty"`
	ContractPrice   *decimal.Decimal `json:"contractPrice,omitempty"`
	TotalServiceFee *decimal.Decimal `json:"totalServiceFee,omitempty"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status"`
}
