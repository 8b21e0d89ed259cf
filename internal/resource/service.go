package resource

import (
	"context"
)

type Service interface {
	GetByID(ctx context.Context, kind Kind, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	// Columns returns the resources to lay out as grid columns, in directory order.
	// An empty ids slice selects every resource of the kind.
	Columns(ctx context.Context, kind Kind, ids []string) ([]*Resource, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, kind Kind, id string) (*Resource, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, kind, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	if filter.Kind != "" {
		if _, err := ParseKind(string(filter.Kind)); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Columns(ctx context.Context, kind Kind, ids []string) ([]*Resource, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	list, _, err := s.repo.List(ctx, Filter{Kind: kind, IDs: ids})
	if err != nil {
		return nil, err
	}

	// Explicit selections keep the caller's order.
	if len(ids) == 0 {
		return list, nil
	}
	byID := make(map[string]*Resource, len(list))
	for _, r := range list {
		byID[r.ID] = r
	}
	ordered := make([]*Resource, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, ErrNotFound
		}
		ordered = append(ordered, r)
	}
	return ordered, nil
}
