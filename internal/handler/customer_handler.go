package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"customerhub/internal/model"
	"customerhub/internal/service"
)

// CustomerHandler handles customer endpoints. Every operation is scoped to the
// authenticated caller.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents a new customer. Name and email are required;
// the service checks them after trimming.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// UpdateCustomerRequest carries any subset of customer fields.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// CustomerListResponse wraps customer summaries.
type CustomerListResponse struct {
	Success   bool                    `json:"success"`
	Customers []model.CustomerSummary `json:"customers"`
}

// CustomerResponse wraps a single customer.
type CustomerResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	Customer model.Customer `json:"customer"`
}

// List godoc
// @Summary List the caller's customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CustomerListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	customers, err := h.customerService.List(c.Request().Context(), id.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, CustomerListResponse{Success: true, Customers: customers})
}

// Get godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	customer, err := h.customerService.Get(c.Request().Context(), c.Param("id"), id.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, CustomerResponse{Success: true, Customer: *customer})
}

// Create godoc
// @Summary Add a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "Customer"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req CreateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.Create(c.Request().Context(), model.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}, id.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, CustomerResponse{
		Success:  true,
		Message:  "Customer added successfully",
		Customer: *customer,
	})
}

// Update godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req UpdateCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.Update(c.Request().Context(), c.Param("id"), model.CustomerPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}, id.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, CustomerResponse{
		Success:  true,
		Message:  "Customer updated successfully",
		Customer: *customer,
	})
}

// Delete godoc
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(c.Request().Context(), c.Param("id"), id.ID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Customer deleted successfully"})
}
