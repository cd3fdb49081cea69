package services

import (
	"errors"

	"bookcourier/internal/domain"
	"bookcourier/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Orders  *repos.OrderRepo
}

func NewReviewService(reviews *repos.ReviewRepo, orders *repos.OrderRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Orders: orders}
}

// Add records a review. Only accounts holding a confirmed order for the book
// may review it, and only once.
func (s *ReviewService) Add(bookID, email string, rating int, comment string) error {
	ordered, err := s.Orders.HasConfirmed(email, bookID)
	if err != nil {
		return err
	}
	if !ordered {
		return ErrForbidden
	}

	err = s.Reviews.Create(domain.Review{
		ID:      uuid.NewString(),
		BookID:  bookID,
		Email:   email,
		Rating:  rating,
		Comment: comment,
	})
	if errors.Is(err, repos.ErrDuplicate) {
		return ErrConflict
	}
	return err
}

func (s *ReviewService) ForBook(bookID string) ([]domain.Review, error) {
	return s.Reviews.ListByBook(bookID)
}
