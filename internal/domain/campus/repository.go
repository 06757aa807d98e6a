package campus

import "context"

type CampusRepository interface {
	Create(ctx context.Context, c Campus) (Campus, error)
	GetByID(ctx context.Context, id string) (*Campus, error)
	GetByName(ctx context.Context, name string) (*Campus, error)
	List(ctx context.Context) ([]Campus, error)
	Update(ctx context.Context, c Campus) error
	Delete(ctx context.Context, id string) error
}
