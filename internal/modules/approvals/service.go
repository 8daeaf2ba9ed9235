package approvals

import (
	"context"
	"time"

	"vrisa/internal/domain"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

// Service runs the confirm-then-mutate-then-refetch protocol for the three
// approval queues. Every decision needs a live intent token; on success the
// affected list is refetched exactly once so the caller always renders
// server truth, never an optimistic removal.
type Service struct {
	institutions InstitutionAPI
	stations     StationAPI
	researchers  ResearcherAPI
	intents      *intentStore
}

func NewService(inst InstitutionAPI, st StationAPI, res ResearcherAPI, intentTTL time.Duration) *Service {
	return &Service{
		institutions: inst,
		stations:     st,
		researchers:  res,
		intents:      newIntentStore(intentTTL),
	}
}

// Queue returns the pending items visible to the caller.
func (s *Service) Queue(ctx context.Context, sess *session.Session) (*Queue, error) {
	q := &Queue{}
	for _, tab := range TabsFor(sess.Role) {
		if err := s.refetch(ctx, sess, tab.Key, q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// refetch loads one list into q. Approve/Reject call it exactly once after a
// successful mutation.
func (s *Service) refetch(ctx context.Context, sess *session.Session, typ ItemType, q *Queue) error {
	switch typ {
	case ItemInstitution:
		insts, err := s.institutions.ListInstitutions(ctx, sess.AccessToken, domain.InstitutionPending)
		if err != nil {
			return err
		}
		q.Institutions = insts
	case ItemStation:
		filter := upstream.StationFilter{Status: domain.StationPending}
		if sess.Role != domain.RoleSuperAdmin {
			filter.InstitutionID = sess.InstitutionID
		}
		stations, err := s.stations.ListStations(ctx, sess.AccessToken, filter)
		if err != nil {
			return err
		}
		items := make([]StationItem, 0, len(stations))
		for _, st := range stations {
			items = append(items, newStationItem(st))
		}
		q.Stations = items
	case ItemResearcher:
		reqs, err := s.researchers.PendingResearchers(ctx, sess.AccessToken)
		if err != nil {
			return err
		}
		q.Researchers = reqs
	default:
		return ErrUnknownItemType
	}
	return nil
}

// PrepareIntent opens the confirmation step. For station approvals it checks
// the sensor count so the prompt can carry the override warning.
func (s *Service) PrepareIntent(ctx context.Context, sess *session.Session, typ ItemType, action Action, itemID int64) (*Intent, error) {
	if !roleMayAct(sess.Role, typ) {
		return nil, ErrNotAllowed
	}

	it := Intent{Type: typ, Action: action, ItemID: itemID, UserID: sess.UserID}
	if typ == ItemStation {
		st, err := s.stations.GetStation(ctx, sess.AccessToken, itemID)
		if err != nil {
			return nil, err
		}
		if sess.Role != domain.RoleSuperAdmin {
			if sess.InstitutionID == nil || st.InstitutionID != *sess.InstitutionID {
				return nil, ErrNotAllowed
			}
		}
		if action == ActionApprove && len(st.Sensors) == 0 {
			it.Warning = noSensorsReason
			it.RequiresForce = true
		}
	}

	created := s.intents.create(it)
	return &created, nil
}

// Approve consumes the intent, applies the mutation and refetches the
// affected list once. A missing or mismatched token means the confirmation
// step was skipped and nothing is mutated.
func (s *Service) Approve(ctx context.Context, sess *session.Session, typ ItemType, itemID int64, token string, force bool) (*Queue, error) {
	it, err := s.consumeMatching(sess, typ, ActionApprove, itemID, token)
	if err != nil {
		return nil, err
	}
	if it.RequiresForce && !force {
		return nil, ErrSensorsRequired
	}

	switch typ {
	case ItemInstitution:
		err = s.institutions.ApproveInstitutionRequest(ctx, sess.AccessToken, itemID)
	case ItemStation:
		_, err = s.stations.PatchStation(ctx, sess.AccessToken, itemID, map[string]any{
			"operative_status": domain.StationActive,
		})
	case ItemResearcher:
		err = s.researchers.ApproveResearcher(ctx, sess.AccessToken, itemID)
	}
	if err != nil {
		return nil, err
	}

	q := &Queue{}
	if err := s.refetch(ctx, sess, typ, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Reject mirrors Approve with the rejection endpoints.
func (s *Service) Reject(ctx context.Context, sess *session.Session, typ ItemType, itemID int64, token, reason string) (*Queue, error) {
	if _, err := s.consumeMatching(sess, typ, ActionReject, itemID, token); err != nil {
		return nil, err
	}

	var err error
	switch typ {
	case ItemInstitution:
		err = s.institutions.RejectInstitutionRequest(ctx, sess.AccessToken, itemID, reason)
	case ItemStation:
		_, err = s.stations.PatchStation(ctx, sess.AccessToken, itemID, map[string]any{
			"operative_status": domain.StationRejected,
		})
	case ItemResearcher:
		err = s.researchers.RejectResearcher(ctx, sess.AccessToken, itemID, reason)
	}
	if err != nil {
		return nil, err
	}

	q := &Queue{}
	if err := s.refetch(ctx, sess, typ, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) consumeMatching(sess *session.Session, typ ItemType, action Action, itemID int64, token string) (Intent, error) {
	it, ok := s.intents.consume(token)
	if !ok || it.Type != typ || it.Action != action || it.ItemID != itemID || it.UserID != sess.UserID {
		return Intent{}, ErrConfirmationRequired
	}
	return it, nil
}
