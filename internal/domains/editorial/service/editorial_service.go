package service

import (
	"context"

	"github.com/google/uuid"

	"libreria-backend/internal/domains/editorial"
)

type editorialServiceImpl struct {
	repository editorial.Repository
}

func NewEditorialService(repo editorial.Repository) editorial.Service {
	return &editorialServiceImpl{repository: repo}
}

func (s *editorialServiceImpl) Create(ctx context.Context, req *editorial.CreateEditorialReq) (*editorial.EditorialResp, error) {
	created, err := s.repository.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	resp := editorial.ToResp(created)
	return &resp, nil
}

func (s *editorialServiceImpl) FindAll(ctx context.Context) ([]editorial.EditorialResp, error) {
	editorials, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return editorial.ToRespList(editorials), nil
}

func (s *editorialServiceImpl) FindOne(ctx context.Context, id uuid.UUID) (*editorial.EditorialResp, error) {
	entity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := editorial.ToResp(entity)
	return &resp, nil
}

func (s *editorialServiceImpl) Update(ctx context.Context, id uuid.UUID, req *editorial.UpdateEditorialReq) (*editorial.EditorialResp, error) {
	entity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := entity.Name
	if req.Name != nil {
		name = *req.Name
	}

	updated, err := s.repository.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}

	resp := editorial.ToResp(updated)
	return &resp, nil
}

func (s *editorialServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repository.SoftDelete(ctx, id)
}
