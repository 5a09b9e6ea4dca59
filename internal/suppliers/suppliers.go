package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
)

const notFoundMessage = "supplier not found"

var fieldValidator = validator.New()

// SupplierDTO is the JSON shape returned to clients.
type SupplierDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierInput is the create and full-update payload.
type SupplierInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func FromModel(m *models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
	}
}

// Repository persists suppliers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var row models.Supplier
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, row *models.Supplier) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) Update(ctx context.Context, row *models.Supplier) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":    row.Name,
			"email":   row.Email,
			"phone":   row.Phone,
			"address": row.Address,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Service exposes catalogue operations on suppliers.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) List(ctx context.Context) ([]SupplierDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list suppliers")
	}
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*SupplierDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, input SupplierInput) (*SupplierDTO, error) {
	row, err := toModel(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create supplier")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, id int64, input SupplierInput) (*SupplierDTO, error) {
	row, err := toModel(input)
	if err != nil {
		return nil, err
	}
	row.ID = id
	found, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update supplier")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete supplier")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return nil
}

func toModel(in SupplierInput) (*models.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	email := trimmedOrNil(in.Email)
	if email != nil {
		if err := fieldValidator.Var(*email, "email"); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
	}
	return &models.Supplier{
		Name:    name,
		Email:   email,
		Phone:   trimmedOrNil(in.Phone),
		Address: trimmedOrNil(in.Address),
	}, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
