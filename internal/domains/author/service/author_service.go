package service

import (
	"context"

	"github.com/google/uuid"

	"libreria-backend/internal/domains/author"
)

type authorServiceImpl struct {
	repository author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorServiceImpl{repository: repo}
}

func (s *authorServiceImpl) Create(ctx context.Context, req *author.CreateAuthorReq) (*author.AuthorResp, error) {
	created, err := s.repository.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	resp := author.ToResp(created)
	return &resp, nil
}

func (s *authorServiceImpl) FindAll(ctx context.Context) ([]author.AuthorResp, error) {
	authors, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return author.ToRespList(authors), nil
}

func (s *authorServiceImpl) FindOne(ctx context.Context, id uuid.UUID) (*author.AuthorResp, error) {
	entity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := author.ToResp(entity)
	return &resp, nil
}

func (s *authorServiceImpl) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorReq) (*author.AuthorResp, error) {
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

	resp := author.ToResp(updated)
	return &resp, nil
}

func (s *authorServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repository.SoftDelete(ctx, id)
}
