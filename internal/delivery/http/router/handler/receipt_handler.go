package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"lunchlog/config"
	"lunchlog/internal/delivery/http/middleware"
	"lunchlog/internal/delivery/http/response"
	"lunchlog/internal/domain/entity"
	domainerrors "lunchlog/internal/domain/errors"
	"lunchlog/internal/domain/service"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ReceiptRequest is the JSON body for creating or replacing a receipt.
type ReceiptRequest struct {
	Price      string                  `json:"price" validate:"required"`
	Currency   string                  `json:"currency" validate:"omitempty,len=3"`
	Date       string                  `json:"date" validate:"required"`
	Restaurant *RestaurantDraftRequest `json:"restaurant" validate:"omitempty"`
}

// RestaurantDraftRequest is the optional free-form restaurant draft.
type RestaurantDraftRequest struct {
	Name    string              `json:"name" validate:"required"`
	Address AddressDraftRequest `json:"address" validate:"required"`
}

// AddressDraftRequest is the draft's address block.
type AddressDraftRequest struct {
	Street     string `json:"street" validate:"required"`
	Locality   string `json:"locality" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	RegionCode string `json:"region_code" validate:"required"`
}

// ListReceiptsRequest holds the optional month/year filter query parameters.
type ListReceiptsRequest struct {
	Month *int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  *int `query:"year" validate:"omitempty,min=1970"`
}

// ReceiptResponse is the outward representation of a receipt.
type ReceiptResponse struct {
	ID         string              `json:"id"`
	Price      string              `json:"price"`
	Currency   string              `json:"currency"`
	Date       string              `json:"date"`
	ImageKey   string              `json:"image_key,omitempty"`
	Restaurant *RestaurantResponse `json:"restaurant,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// RestaurantResponse is the resolved restaurant attached to a receipt.
type RestaurantResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	FoodTypes []string         `json:"food_types"`
	Address   *AddressResponse `json:"address,omitempty"`
}

// AddressResponse is the canonical address of a resolved restaurant.
type AddressResponse struct {
	Street      string `json:"street"`
	Locality    string `json:"locality"`
	PostalCode  string `json:"postal_code"`
	RegionCode  string `json:"region_code"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ReceiptHandler holds dependencies for receipt-related handlers.
type ReceiptHandler struct {
	uc     usecase.ReceiptUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewReceiptHandler is the constructor for ReceiptHandler, injected by Fx.
func NewReceiptHandler(uc usecase.ReceiptUsecase, cfg *config.Config, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// bindReceiptRequest binds and validates a receipt body, parsing the price
// and date. A non-nil error has already been written as a response.
func bindReceiptRequest(c echo.Context) (*ReceiptRequest, decimal.Decimal, time.Time, error) {
	var req ReceiptRequest
	if err := c.Bind(&req); err != nil {
		return nil, decimal.Zero, time.Time{}, response.BindingError(c, "INVALID_INPUT", "Invalid receipt input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, decimal.Zero, time.Time{}, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, decimal.Zero, time.Time{}, response.BadRequest(c, "INVALID_PRICE", "Price must be a decimal number")
	}
	if price.IsNegative() {
		return nil, decimal.Zero, time.Time{}, response.BadRequest(c, "INVALID_PRICE", "Price must not be negative")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, decimal.Zero, time.Time{}, response.BadRequest(c, "INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}

	return &req, price, date, nil
}

// restaurantDraft maps the optional request draft to the service type.
func restaurantDraft(req *ReceiptRequest) *service.RestaurantDraft {
	if req.Restaurant == nil {
		return nil
	}

	return &service.RestaurantDraft{
		Name: req.Restaurant.Name,
		Address: service.AddressDraft{
			Street:     req.Restaurant.Address.Street,
			Locality:   req.Restaurant.Address.Locality,
			PostalCode: req.Restaurant.Address.PostalCode,
			RegionCode: req.Restaurant.Address.RegionCode,
		},
	}
}

// Create handles the receipt creation request.
func (h *ReceiptHandler) Create(c echo.Context) error {
	req, price, date, err := bindReceiptRequest(c)
	if err != nil {
		return err
	}

	input := &usecase.CreateReceiptInput{
		Price:      price,
		Currency:   req.Currency,
		Date:       date,
		Restaurant: restaurantDraft(req),
	}

	receipt, err := h.uc.CreateReceipt(c.Request().Context(), ownerID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toReceiptResponse(receipt), "Receipt created successfully")
}

// Update handles replacing a receipt's price, currency, and date.
func (h *ReceiptHandler) Update(c echo.Context) error {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "RECEIPT_NOT_FOUND", "Receipt not found")
	}

	req, price, date, err := bindReceiptRequest(c)
	if err != nil {
		return err
	}

	input := &usecase.UpdateReceiptInput{
		Price:      price,
		Currency:   req.Currency,
		Date:       date,
		Restaurant: restaurantDraft(req),
	}

	receipt, err := h.uc.UpdateReceipt(c.Request().Context(), ownerID(c), receiptID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptResponse(receipt), "Receipt updated successfully")
}

// List handles the receipt listing request, filtered by month and year.
func (h *ReceiptHandler) List(c echo.Context) error {
	var req ListReceiptsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	receipts, err := h.uc.ListReceipts(c.Request().Context(), ownerID(c), &usecase.ListReceiptsInput{
		Month: req.Month,
		Year:  req.Year,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]*ReceiptResponse, 0, len(receipts))
	for _, receipt := range receipts {
		items = append(items, toReceiptResponse(receipt))
	}

	return response.Success(c, http.StatusOK, items, "")
}

// Get handles fetching one receipt by ID.
func (h *ReceiptHandler) Get(c echo.Context) error {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "RECEIPT_NOT_FOUND", "Receipt not found")
	}

	receipt, err := h.uc.GetReceipt(c.Request().Context(), ownerID(c), receiptID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptResponse(receipt), "")
}

// Delete handles removing one receipt by ID.
func (h *ReceiptHandler) Delete(c echo.Context) error {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "RECEIPT_NOT_FOUND", "Receipt not found")
	}

	if err := h.uc.DeleteReceipt(c.Request().Context(), ownerID(c), receiptID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage handles attaching an image to a receipt via multipart upload.
func (h *ReceiptHandler) UploadImage(c echo.Context) error {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "RECEIPT_NOT_FOUND", "Receipt not found")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_IMAGE", "Multipart field 'image' is required")
	}

	// Reject by declared size before pulling the file into memory.
	if fileHeader.Size > h.cfg.Storage.MaxImageSize {
		return errors.WithStack(domainerrors.ErrImageTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_IMAGE", "Could not read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "INVALID_IMAGE", "Could not read uploaded image")
	}

	receipt, err := h.uc.UploadReceiptImage(c.Request().Context(), ownerID(c), receiptID, &usecase.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReceiptResponse(receipt), "Image uploaded successfully")
}

// ownerID reads the authenticated user ID set by the auth middleware.
func ownerID(c echo.Context) uuid.UUID {
	id, _ := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return id
}

func toReceiptResponse(receipt *entity.Receipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		ID:        receipt.ID.String(),
		Price:     receipt.Price.StringFixed(2),
		Currency:  receipt.Currency,
		Date:      receipt.Date.Format(dateLayout),
		ImageKey:  receipt.ImageKey,
		CreatedAt: receipt.CreatedAt,
	}
	if receipt.Restaurant != nil {
		resp.Restaurant = &RestaurantResponse{
			ID:        receipt.Restaurant.ID.String(),
			Name:      receipt.Restaurant.Name,
			FoodTypes: receipt.Restaurant.FoodTypes,
		}
		if receipt.Restaurant.Address != nil {
			addr := receipt.Restaurant.Address
			resp.Restaurant.Address = &AddressResponse{
				Street:      addr.Street,
				Locality:    addr.Locality,
				PostalCode:  addr.PostalCode,
				RegionCode:  addr.RegionCode,
				PhoneNumber: addr.PhoneNumber,
			}
		}
	}

	return resp
}
