package pipeline

import (
	"context"
	"errors"
	"fmt"

	"talentflow/core/client"
	"talentflow/core/models"
)

// ErrInvalidStage rejects a transition to a stage outside the fixed set.
var ErrInvalidStage = errors.New("invalid stage")

// CacheKey is the coordinator cache key for the candidate board.
const CacheKey = "candidates"

// GroupByStage partitions candidates into the six pipeline stages in
// canonical order, preserving relative input order within each group.
// Candidates carrying an unrecognized stage are excluded from every
// group; corrupt rows must not crash the board.
func GroupByStage(candidates []models.Candidate) map[models.Stage][]models.Candidate {
	grouped := make(map[models.Stage][]models.Candidate, len(models.Stages()))
	for _, stage := range models.Stages() {
		grouped[stage] = []models.Candidate{}
	}
	for _, c := range candidates {
		if !c.Stage.Valid() {
			continue
		}
		grouped[c.Stage] = append(grouped[c.Stage], c)
	}
	return grouped
}

// Machine moves candidates between stages through the optimistic
// mutation coordinator. Every stage is reachable from every other; the
// board's drag gestures are free-form.
type Machine struct {
	api *client.Client
	co  *client.Coordinator
}

// NewMachine wires the pipeline onto an API client and coordinator, and
// registers the board's fetcher.
func NewMachine(api *client.Client, co *client.Coordinator) *Machine {
	m := &Machine{api: api, co: co}
	co.RegisterFetcher(CacheKey, func(ctx context.Context) (interface{}, error) {
		candidates, err := api.ListCandidates(ctx, "", "")
		if err != nil {
			return nil, err
		}
		return candidates, nil
	})
	return m
}

// Load fetches the candidate board into the cache and returns it.
func (m *Machine) Load(ctx context.Context) ([]models.Candidate, error) {
	if err := m.co.Refresh(ctx, CacheKey); err != nil {
		return nil, err
	}
	return m.Board(), nil
}

// Board returns the cached candidate list, which may include unsettled
// optimistic changes.
func (m *Machine) Board() []models.Candidate {
	data, ok := m.co.Cache().Get(CacheKey)
	if !ok {
		return nil
	}
	candidates, _ := data.([]models.Candidate)
	return candidates
}

// RequestTransition moves a candidate to target. An unrecognized target
// is rejected; moving a candidate to its current stage is a successful
// no-op. With a loaded board the no-op is detected locally and issues no
// transport call; a cold cache costs one read to resolve the current
// stage first. Otherwise the move runs through
// the optimistic protocol: the board updates immediately, and a failed
// server call rolls it back to the pre-move snapshot.
func (m *Machine) RequestTransition(ctx context.Context, candidateID string, target models.Stage) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStage, target)
	}

	current, err := m.currentStage(ctx, candidateID)
	if err != nil {
		return err
	}
	if current == target {
		return nil
	}

	return m.co.Mutate(ctx, client.Mutation{
		CacheKey: CacheKey,
		Resource: "candidate/" + candidateID,
		Action:   "Move candidate",
		Apply: func(data interface{}) interface{} {
			candidates, _ := data.([]models.Candidate)
			next := make([]models.Candidate, len(candidates))
			copy(next, candidates)
			for i := range next {
				if next[i].ID == candidateID {
					next[i].Stage = target
				}
			}
			return next
		},
		Dispatch: func(ctx context.Context) error {
			_, err := m.api.UpdateCandidateStage(ctx, candidateID, target)
			return err
		},
	})
}

// currentStage resolves the candidate's stage from the cached board,
// falling back to a direct fetch when the board is cold.
func (m *Machine) currentStage(ctx context.Context, candidateID string) (models.Stage, error) {
	for _, c := range m.Board() {
		if c.ID == candidateID {
			return c.Stage, nil
		}
	}
	candidate, err := m.api.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}
	return candidate.Stage, nil
}
