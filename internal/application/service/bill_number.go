package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/billing-api/internal/domain/repository"
)

// BillNumberer hands out bill numbers of the form PREFIX-YYYY-NNNN. The sequence is
// per calendar year, starts after the highest number already stored and only grows.
type BillNumberer struct {
	mu     sync.Mutex
	prefix string
	repo   repository.BillRepository
	last   map[int]int
}

// NewBillNumberer creates a numberer for prefix (e.g. "INV")
func NewBillNumberer(prefix string, repo repository.BillRepository) *BillNumberer {
	if prefix == "" {
		prefix = "INV"
	}
	return &BillNumberer{
		prefix: prefix,
		repo:   repo,
		last:   make(map[int]int),
	}
}

// Next reserves the next number for the year of date
func (n *BillNumberer) Next(ctx context.Context, date time.Time) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	year := date.Year()
	if _, seeded := n.last[year]; !seeded {
		highest, err := n.highestStored(ctx, year)
		if err != nil {
			return "", err
		}
		n.last[year] = highest
	}

	n.last[year]++
	return n.format(year, n.last[year]), nil
}

func (n *BillNumberer) format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", n.prefix, year, seq)
}

func (n *BillNumberer) highestStored(ctx context.Context, year int) (int, error) {
	yearPrefix := fmt.Sprintf("%s-%d-", n.prefix, year)
	numbers, err := n.repo.NumbersWithPrefix(ctx, yearPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to read bill numbers: %w", err)
	}

	highest := 0
	for _, number := range numbers {
		seq, err := strconv.Atoi(strings.TrimPrefix(number, yearPrefix))
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return highest, nil
}
