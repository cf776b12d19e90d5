package upload

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the record table behind the store. Every write commits on return.
type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id uint) (*File, error)
	Update(ctx context.Context, id uint, filename, filePath string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*File, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, id uint, filename, filePath string) error {
	res := r.db.WithContext(ctx).Model(&File{}).Where("id = ?", id).Updates(map[string]any{
		"filename":  filename,
		"file_path": filePath,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&File{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).Order("id ASC").Find(&files).Error
	return files, err
}
