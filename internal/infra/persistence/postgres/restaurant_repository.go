package postgres

import (
	"context"

	"lunchlog/internal/domain/entity"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// restaurantRepository implements the domain.RestaurantRepository interface.
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository is the constructor for restaurantRepository.
func NewRestaurantRepository(db *gorm.DB) repository.RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Upsert performs a single atomic INSERT ... ON CONFLICT (address_id)
// DO UPDATE. Re-resolving the same address overwrites name and food types
// instead of duplicating the restaurant.
func (repo *restaurantRepository) Upsert(ctx context.Context, addressID uuid.UUID, name string, foodTypes []string) (*entity.Restaurant, error) {
	restaurantM := &model.RestaurantModel{
		ID:        uuid.New(),
		Name:      name,
		FoodTypes: foodTypes,
		AddressID: addressID,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "food_types", "updated_at",
			}),
		}).
		Create(restaurantM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert restaurant")
	}

	var winner model.RestaurantModel
	err = repo.db.WithContext(ctx).
		Where("address_id = ?", addressID).
		First(&winner).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload upserted restaurant")
	}

	return toRestaurantDomain(&winner), nil
}

// toRestaurantDomain converts a GORM RestaurantModel to a domain Restaurant entity.
func toRestaurantDomain(data *model.RestaurantModel) *entity.Restaurant {
	if data == nil {
		return nil
	}

	return &entity.Restaurant{
		ID:        data.ID,
		Name:      data.Name,
		FoodTypes: data.FoodTypes,
		AddressID: data.AddressID,
		Address:   toAddressDomain(data.Address),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
