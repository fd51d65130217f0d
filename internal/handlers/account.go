package handlers

import (
	"ledger/internal/models"
	"ledger/internal/services/account"
	"ledger/internal/utils/pagination"
	"ledger/internal/utils/response"
	"ledger/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AccountHandler exposes account endpoints.
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(s account.Service) *AccountHandler { return &AccountHandler{service: s} }

type createAccountRequest struct {
	AccountID string           `json:"accountId"`
	Balance   *decimal.Decimal `json:"balance"`
}

// CreateAccount handles POST /v1/accounts.
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	v := validation.New()
	v.NotBlank("accountId", req.AccountID)
	if v.Required("balance", req.Balance) {
		v.Check(!req.Balance.IsNegative(), "balance", "Initial balance must be positive.")
	}
	if !v.Valid() {
		return response.ValidationError(c, v)
	}

	acc, err := h.service.CreateAccount(c.UserContext(), models.NewAccount(req.AccountID, *req.Balance))
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Created(c, "account created", acc)
}

// GetAccount handles GET /v1/accounts/:id.
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	acc, err := h.service.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(acc)
}

// ListAccounts handles GET /v1/accounts?page=&limit=. Accounts are ordered by id.
func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	list, err := h.service.ListAccounts(c.UserContext())
	if err != nil {
		return response.DomainError(c, err)
	}
	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, list)
	return c.JSON(pagination.Response(p, page))
}

// TotalBalance handles GET /v1/accounts/total.
func (h *AccountHandler) TotalBalance(c *fiber.Ctx) error {
	total, err := h.service.TotalBalance(c.UserContext())
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": total})
}
