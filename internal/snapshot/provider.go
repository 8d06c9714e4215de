// Package snapshot assembles the per-student read-only projection the
// assistant synthesizes replies from. Each chat turn gets a fresh snapshot;
// nothing here mutates storage.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lumina-hms/lumina/internal/assistant"
	"github.com/lumina-hms/lumina/internal/storage"
)

// noticeWindow caps how many recent notices a snapshot carries.
const noticeWindow = 3

// Store is the subset of the storage API the provider reads from.
type Store interface {
	GetHostel(id string) (storage.Hostel, error)
	GetMessMenu(hostelID string) (storage.MessMenu, error)
	ListFees(studentID string) ([]storage.Fee, error)
	ListRecentNotices(hostelID string, limit int) ([]storage.Notice, error)
	ListComplaints(studentID string) ([]storage.Complaint, error)
	ListLeaves(studentID string) ([]storage.Leave, error)
	ListHostelMates(hostelID, room, excludingID string) ([]storage.Student, error)
}

// Provider builds assistant snapshots from the store.
type Provider struct {
	store Store
}

func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// Build fans the seven scoped reads out concurrently and assembles the
// snapshot. A missing hostel or mess menu is not an error: the matching
// snapshot field stays nil and the assistant falls back to its empty-state
// reply. Any other storage failure aborts the build.
func (p *Provider) Build(ctx context.Context, user assistant.UserContext) (assistant.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return assistant.Snapshot{}, err
	}

	var snap assistant.Snapshot
	var g errgroup.Group

	g.Go(func() error {
		h, err := p.store.GetHostel(user.HostelID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading hostel: %w", err)
		}
		snap.Hostel = &assistant.Hostel{ID: h.ID, Name: h.Name}
		return nil
	})

	g.Go(func() error {
		m, err := p.store.GetMessMenu(user.HostelID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading mess menu: %w", err)
		}
		snap.MessMenu = &assistant.MessMenu{
			Breakfast:   m.Breakfast,
			Lunch:       m.Lunch,
			Dinner:      m.Dinner,
			LastUpdated: m.UpdatedAt.Format("2006-01-02"),
		}
		return nil
	})

	g.Go(func() error {
		fees, err := p.store.ListFees(user.ID)
		if err != nil {
			return fmt.Errorf("loading fees: %w", err)
		}
		for _, f := range fees {
			snap.Fees = append(snap.Fees, assistant.Fee{
				Amount:  f.Amount,
				DueDate: f.DueDate,
				Status:  f.Status,
			})
		}
		return nil
	})

	g.Go(func() error {
		notices, err := p.store.ListRecentNotices(user.HostelID, noticeWindow)
		if err != nil {
			return fmt.Errorf("loading notices: %w", err)
		}
		for _, n := range notices {
			snap.Notices = append(snap.Notices, assistant.Notice{
				Title:   n.Title,
				Content: n.Content,
				Date:    n.PostedAt.Format("2006-01-02"),
			})
		}
		return nil
	})

	g.Go(func() error {
		complaints, err := p.store.ListComplaints(user.ID)
		if err != nil {
			return fmt.Errorf("loading complaints: %w", err)
		}
		for _, c := range complaints {
			snap.Complaints = append(snap.Complaints, assistant.Complaint{
				Type:   c.Type,
				Status: c.Status,
				Date:   c.FiledAt.Format("2006-01-02"),
			})
		}
		return nil
	})

	g.Go(func() error {
		leaves, err := p.store.ListLeaves(user.ID)
		if err != nil {
			return fmt.Errorf("loading leaves: %w", err)
		}
		for _, l := range leaves {
			snap.Leaves = append(snap.Leaves, assistant.Leave{
				Type:      l.Type,
				Status:    l.Status,
				StartDate: l.StartDate,
				EndDate:   l.EndDate,
			})
		}
		return nil
	})

	g.Go(func() error {
		mates, err := p.store.ListHostelMates(user.HostelID, user.Room, user.ID)
		if err != nil {
			return fmt.Errorf("loading hostel mates: %w", err)
		}
		for _, m := range mates {
			snap.HostelMates = append(snap.HostelMates, assistant.Mate{ID: m.ID, Name: m.Name})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return assistant.Snapshot{}, err
	}
	return snap, nil
}
