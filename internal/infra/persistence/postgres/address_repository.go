// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// addressRepository implements the domain.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Upsert performs a single atomic INSERT ... ON CONFLICT (google_place_id)
// DO UPDATE. Two enrichment runs racing on the same place id converge to
// one row; the database constraint is the only synchronization.
func (repo *addressRepository) Upsert(ctx context.Context, googlePlaceID string, fields repository.AddressFields) (*entity.Address, error) {
	addressM := &model.AddressModel{
		ID:            uuid.New(),
		GooglePlaceID: googlePlaceID,
		Street:        fields.Street,
		Locality:      fields.Locality,
		PostalCode:    fields.PostalCode,
		RegionCode:    fields.RegionCode,
		PhoneNumber:   fields.PhoneNumber,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "google_place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"street", "locality", "postal_code", "region_code", "phone_number", "updated_at",
			}),
		}).
		Create(addressM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert address")
	}

	// On conflict the generated id above was discarded; read the winning row
	// back so callers always see the canonical record.
	var winner model.AddressModel
	err = repo.db.WithContext(ctx).
		Where("google_place_id = ?", googlePlaceID).
		First(&winner).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload upserted address")
	}

	return toAddressDomain(&winner), nil
}

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:            data.ID,
		GooglePlaceID: data.GooglePlaceID,
		Street:        data.Street,
		Locality:      data.Locality,
		PostalCode:    data.PostalCode,
		RegionCode:    data.RegionCode,
		PhoneNumber:   data.PhoneNumber,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
