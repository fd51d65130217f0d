package handlers

import (
	"strings"

	"ledger/internal/models"
	"ledger/internal/services/transfer"
	"ledger/internal/utils/response"
	"ledger/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the transfer endpoint.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

type transferRequest struct {
	AccountFrom    string           `json:"accountFrom"`
	AccountTo      string           `json:"accountTo"`
	TransferAmount *decimal.Decimal `json:"transferAmount"`
}

// Transfer handles POST /v1/accounts/transfer requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	v := validation.New()
	v.NotBlank("accountFrom", req.AccountFrom)
	v.NotBlank("accountTo", req.AccountTo)
	v.Required("transferAmount", req.TransferAmount)
	if !v.Valid() {
		return response.ValidationError(c, v)
	}

	receipt, err := h.service.Transfer(c.UserContext(), models.TransferRequest{
		FromAccountID: strings.TrimSpace(req.AccountFrom),
		ToAccountID:   strings.TrimSpace(req.AccountTo),
		Amount:        *req.TransferAmount,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Accepted(c, "Amount Transfer Completed", receipt)
}
