package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"draftbook-backend/internal/domains/author"
	"draftbook-backend/internal/domains/book"
	"draftbook-backend/internal/shared/utils"
)

// authorService implements author.Service.
type authorService struct {
	repo  author.Repository
	books book.Repository
}

func NewAuthorService(repo author.Repository, books book.Repository) author.Service {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

// Create runs the validation pipeline (trim, required/format checks,
// HTML escape) and persists the author. There is deliberately no
// existence check by email: repeated sign-ins with the same Google
// account create additional records instead of upserting. The listing
// and update paths tolerate those duplicates.
func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	newAuthor := &author.Author{
		Name:    utils.Sanitize(req.Name),
		Email:   utils.Sanitize(req.Email),
		Summary: utils.Sanitize(req.Summary),
	}

	created, err := s.repo.Create(ctx, newAuthor)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (s *authorService) GetAll(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

// GetDetail loads the author and their books in parallel. A missing
// author aborts the whole fetch.
func (s *authorService) GetDetail(ctx context.Context, id uuid.UUID) (*author.Author, []book.Book, error) {
	if id == uuid.Nil {
		return nil, nil, author.ErrAuthorNotFound
	}

	var (
		a     *author.Author
		books []book.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.books.ListByAuthor(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return a, books, nil
}

// GetSummaryByEmail escapes the email the same way the create path does,
// so the lookup matches the stored form even when the address contains
// escapable characters.
func (s *authorService) GetSummaryByEmail(ctx context.Context, email string) (string, error) {
	a, err := s.repo.GetByEmail(ctx, utils.Sanitize(email))
	if err != nil {
		return "", err
	}
	return a.Summary, nil
}

func (s *authorService) UpdateSummary(ctx context.Context, req *author.UpdateSummaryRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.UpdateSummaryByEmail(ctx, utils.Sanitize(req.Email), utils.Sanitize(req.Summary))
}

// DeletePreview is the data behind the confirmation view: the author and
// whatever books still reference them.
func (s *authorService) DeletePreview(ctx context.Context, id uuid.UUID) (*author.Author, []book.Book, error) {
	return s.GetDetail(ctx, id)
}

// Delete enforces the referential-integrity precondition: an author with
// dependent books is not deletable. The count and the delete are two
// statements without a transaction; a request racing between them is an
// accepted risk of this design.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return author.ErrAuthorNotFound
	}

	count, err := s.books.CountByAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check dependent books: %w", err)
	}
	if count > 0 {
		return author.ErrAuthorHasBooks
	}

	return s.repo.Delete(ctx, id)
}
