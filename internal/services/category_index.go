package services

import (
	"context"
	"fmt"

	"eventactivities/internal/domain"
)

// categoryIndexer keeps IndexInCategory contiguous (1..N) inside every (event, category) pair.
// Every method must run inside the unit of work that performs the matching write, so the
// category lock it takes is held until that write commits.
type categoryIndexer struct{}

// next locks the pair and returns the index for an activity joining it.
func (categoryIndexer) next(ctx context.Context, store domain.Store, eventID, categoryID string) (int, error) {
	if err := store.LockCategory(ctx, eventID, categoryID); err != nil {
		return 0, fmt.Errorf("lock category: %w", err)
	}
	n, err := store.Activities().CountInCategory(ctx, eventID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("count activities in category: %w", err)
	}
	return n + 1, nil
}

// move returns the index of an activity leaving oldCategory for newCategory and closes the gap
// it leaves behind. Both pairs are locked in a fixed order.
func (ix categoryIndexer) move(ctx context.Context, store domain.Store, eventID, oldCategory, newCategory string, oldIndex int) (int, error) {
	first, second := oldCategory, newCategory
	if second < first {
		first, second = second, first
	}
	if err := store.LockCategory(ctx, eventID, first); err != nil {
		return 0, fmt.Errorf("lock category: %w", err)
	}
	if err := store.LockCategory(ctx, eventID, second); err != nil {
		return 0, fmt.Errorf("lock category: %w", err)
	}
	index, err := ix.next(ctx, store, eventID, newCategory)
	if err != nil {
		return 0, err
	}
	if err := store.Activities().ShiftCategoryIndex(ctx, eventID, oldCategory, oldIndex); err != nil {
		return 0, fmt.Errorf("shift category index: %w", err)
	}
	return index, nil
}

// release locks the pair, runs remove and shifts down every index above the removed one.
func (categoryIndexer) release(ctx context.Context, store domain.Store, eventID, categoryID string, index int, remove func(ctx context.Context) error) error {
	if err := store.LockCategory(ctx, eventID, categoryID); err != nil {
		return fmt.Errorf("lock category: %w", err)
	}
	if err := remove(ctx); err != nil {
		return err
	}
	if err := store.Activities().ShiftCategoryIndex(ctx, eventID, categoryID, index); err != nil {
		return fmt.Errorf("shift category index: %w", err)
	}
	return nil
}
