package postgres

import (
	"context"

	"lunchlog/internal/domain/entity"
	domainerrors "lunchlog/internal/domain/errors"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// receiptRepository implements the domain.ReceiptRepository interface.
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository is the constructor for receiptRepository.
func NewReceiptRepository(db *gorm.DB) repository.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create persists a new receipt. The restaurant link is nil at creation.
func (repo *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	receiptM := fromReceiptDomain(receipt)

	if err := repo.db.WithContext(ctx).Create(receiptM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrReceiptCreationFailed.WrapMessage("invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create receipt")
	}

	receipt.CreatedAt = receiptM.CreatedAt
	receipt.UpdatedAt = receiptM.UpdatedAt

	return nil
}

// FindByIDForOwner retrieves one receipt scoped to its owner. A foreign
// owner's receipt id behaves exactly like a missing one.
func (repo *receiptRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*entity.Receipt, error) {
	var receiptM model.ReceiptModel
	err := repo.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Restaurant.Address").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&receiptM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReceiptNotFound
		}

		return nil, errors.Wrap(err, "failed to find receipt by id")
	}

	return toReceiptDomain(&receiptM), nil
}

// UpdateByIDForOwner persists the receipt's editable fields, scoped to its
// owner. A foreign owner's receipt id behaves exactly like a missing one.
func (repo *receiptRepository) UpdateByIDForOwner(ctx context.Context, ownerID uuid.UUID, receipt *entity.Receipt) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReceiptModel{}).
		Where("id = ? AND user_id = ?", receipt.ID, ownerID).
		Updates(map[string]any{
			"price":    receipt.Price,
			"currency": receipt.Currency,
			"date":     receipt.Date,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update receipt")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReceiptNotFound
	}

	return nil
}

// ListByOwner returns the owner's receipts matching the filter, oldest first.
func (repo *receiptRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	query := repo.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Restaurant.Address").
		Where("user_id = ?", ownerID).
		Where("EXTRACT(YEAR FROM date) = ?", filter.Year)

	if filter.Month != nil {
		query = query.Where("EXTRACT(MONTH FROM date) = ?", *filter.Month)
	}

	var receiptModels []*model.ReceiptModel
	if err := query.Order("created_at ASC").Find(&receiptModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list receipts by owner")
	}

	receipts := make([]*entity.Receipt, 0, len(receiptModels))
	for _, receiptM := range receiptModels {
		receipts = append(receipts, toReceiptDomain(receiptM))
	}

	return receipts, nil
}

// DeleteByIDForOwner removes one receipt scoped to its owner.
func (repo *receiptRepository) DeleteByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.ReceiptModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete receipt")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReceiptNotFound
	}

	return nil
}

// ExistsByID reports whether a receipt row exists, regardless of owner.
func (repo *receiptRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReceiptModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check receipt existence")
	}

	return count > 0, nil
}

// AttachRestaurant links a restaurant to a receipt. Setting the same
// restaurant twice is a no-op, which keeps event redelivery safe.
func (repo *receiptRepository) AttachRestaurant(ctx context.Context, receiptID, restaurantID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReceiptModel{}).
		Where("id = ?", receiptID).
		Update("restaurant_id", restaurantID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to attach restaurant")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReceiptNotFound
	}

	return nil
}

// UpdateImageKey stores the blob key of the receipt's image.
func (repo *receiptRepository) UpdateImageKey(ctx context.Context, receiptID uuid.UUID, imageKey string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReceiptModel{}).
		Where("id = ?", receiptID).
		Update("image_key", imageKey)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update image key")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReceiptNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toReceiptDomain converts a GORM ReceiptModel to a domain Receipt entity.
func toReceiptDomain(data *model.ReceiptModel) *entity.Receipt {
	if data == nil {
		return nil
	}

	return &entity.Receipt{
		ID:           data.ID,
		Price:        data.Price,
		Currency:     data.Currency,
		Date:         data.Date,
		ImageKey:     data.ImageKey,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
		Restaurant:   toRestaurantDomain(data.Restaurant),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromReceiptDomain converts a domain Receipt entity to a GORM ReceiptModel.
func fromReceiptDomain(data *entity.Receipt) *model.ReceiptModel {
	if data == nil {
		return nil
	}

	return &model.ReceiptModel{
		ID:           data.ID,
		Price:        data.Price,
		Currency:     data.Currency,
		Date:         data.Date,
		ImageKey:     data.ImageKey,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
	}
}
