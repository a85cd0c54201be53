package service

import (
	"context"

	"github.com/google/uuid"

	"libreria-backend/internal/domains/genre"
)

type genreServiceImpl struct {
	repository genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreServiceImpl{repository: repo}
}

func (s *genreServiceImpl) Create(ctx context.Context, req *genre.CreateGenreReq) (*genre.GenreResp, error) {
	created, err := s.repository.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	resp := genre.ToResp(created)
	return &resp, nil
}

func (s *genreServiceImpl) FindAll(ctx context.Context) ([]genre.GenreResp, error) {
	genres, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return genre.ToRespList(genres), nil
}

func (s *genreServiceImpl) FindOne(ctx context.Context, id uuid.UUID) (*genre.GenreResp, error) {
	entity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := genre.ToResp(entity)
	return &resp, nil
}

func (s *genreServiceImpl) Update(ctx context.Context, id uuid.UUID, req *genre.UpdateGenreReq) (*genre.GenreResp, error) {
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

	resp := genre.ToResp(updated)
	return &resp, nil
}

func (s *genreServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repository.SoftDelete(ctx, id)
}
