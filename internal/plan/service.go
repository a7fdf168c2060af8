package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/floorcast/floorcast/backend-go/internal/convert"
	"github.com/floorcast/floorcast/backend-go/internal/db"
	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
	"github.com/floorcast/floorcast/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("plan not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

type Plan struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Plan, error) {
	planID := typeid.NewPlanID()

	dbPlan, err := s.store.CreatePlan(ctx, db.Plan{
		ID:      planID,
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	// Seed the first snapshot with an empty single-floor document.
	doc := document.NewEmptyPlan(planID, name)
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal empty plan: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, db.Snapshot{
		ID:       typeid.NewSnapshotID(),
		PlanID:   planID,
		Version:  1,
		Document: docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return fromDB(dbPlan), nil
}

func (s *Service) Get(ctx context.Context, planID, userID string) (*Plan, error) {
	dbPlan, err := s.ownedPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	return fromDB(*dbPlan), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Plan, error) {
	dbPlans, err := s.store.ListPlansForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	plans := make([]Plan, len(dbPlans))
	for i, p := range dbPlans {
		plans[i] = *fromDB(p)
	}
	return plans, nil
}

func (s *Service) Delete(ctx context.Context, planID, userID string) error {
	if _, err := s.ownedPlan(ctx, planID, userID); err != nil {
		return err
	}
	return s.store.DeletePlan(ctx, planID)
}

// SaveSnapshot stores a new document version for a plan.
func (s *Service) SaveSnapshot(ctx context.Context, planID, userID string, doc *document.Plan) (int32, error) {
	if _, err := s.ownedPlan(ctx, planID, userID); err != nil {
		return 0, err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}

	nextVersion := int32(1)
	if current, err := s.store.GetLatestSnapshot(ctx, planID); err == nil {
		nextVersion = current.Version + 1
	}

	snap, err := s.store.CreateSnapshot(ctx, db.Snapshot{
		ID:       typeid.NewSnapshotID(),
		PlanID:   planID,
		Version:  nextVersion,
		Document: docJSON,
	})
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	return snap.Version, nil
}

// LatestDocument loads the newest stored document of a plan.
func (s *Service) LatestDocument(ctx context.Context, planID, userID string) (*document.Plan, error) {
	if _, err := s.ownedPlan(ctx, planID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}

	var doc document.Plan
	if err := json.Unmarshal(snap.Document, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

// Export converts the latest snapshot of a plan. The capture holds the run's
// notices and its single final payload.
func (s *Service) Export(ctx context.Context, planID, userID string, opts convert.Options) (*sink.Capture, error) {
	doc, err := s.LatestDocument(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("plan %s has no root node", planID)
	}

	var out sink.Capture
	convert.Build([]document.Node{*doc.Root}, opts, &out)
	return &out, nil
}

func (s *Service) ownedPlan(ctx context.Context, planID, userID string) (*db.Plan, error) {
	dbPlan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if dbPlan.OwnerID != userID {
		return nil, ErrForbidden
	}
	return &dbPlan, nil
}

func fromDB(p db.Plan) *Plan {
	return &Plan{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
