package repository

import "github.com/stockmaster/stockmaster-pro/internal/domain/entity"

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Role     string
	IsActive *bool // nil = sin filtro
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsernameOrEmail(username, email string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List(filter UserFilter) ([]*entity.User, error)
}
