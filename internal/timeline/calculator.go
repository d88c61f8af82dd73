package timeline

import (
	"slices"
	"time"
)

type entry[E any] struct {
	ev        E
	created   bool
	updated   bool
	collapsed bool
}

// CalculateChanges reconciles a mission's current events with a batch of
// creates, patches and deletes and returns the resulting plan.
//
// Deleted events are dropped first, patches are applied by id, creates are
// materialized through factory and appended. The working set is then sorted
// by (start, end) with nil end ordered last, and adjacent pairs are swept for
// overlaps. With autoFix the earlier event is truncated to the later one's
// start; an event truncated to zero duration is collapsed: it leaves the
// create/update buckets and, if persisted, its id moves to the delete bucket.
// Without autoFix the first overlap aborts the whole batch with a
// ConflictError and no plan is returned.
//
// The sort is stable, so events that started identical keep their input
// order (existing events before creates). Identical input always yields a
// plan with identical bucket membership.
func CalculateChanges[E Event[E], C any, P Patch[E]](
	current []E,
	updates []P,
	creates []C,
	deleteIDs []uint,
	autoFix bool,
	factory func(C) E,
) (*Plan[E], error) {
	if len(creates) > 0 && factory == nil {
		return nil, ErrFactoryRequired
	}

	deleted := make(map[uint]struct{}, len(deleteIDs))
	for _, id := range deleteIDs {
		deleted[id] = struct{}{}
	}

	entries := make([]*entry[E], 0, len(current)+len(creates))
	byID := make(map[uint]*entry[E], len(current))

	for _, ev := range current {
		if _, ok := deleted[ev.GetID()]; ok {
			continue
		}

		en := &entry[E]{ev: ev}
		entries = append(entries, en)

		if id := ev.GetID(); id != 0 {
			byID[id] = en
		}
	}

	for _, p := range updates {
		en, ok := byID[p.TargetID()]
		if !ok {
			return nil, &NotFoundError{ID: p.TargetID()}
		}

		en.ev = p.Apply(en.ev)
		en.updated = true
	}

	for _, c := range creates {
		entries = append(entries, &entry[E]{ev: factory(c), created: true})
	}

	slices.SortStableFunc(entries, func(a, b *entry[E]) int {
		if c := a.ev.GetStart().Compare(b.ev.GetStart()); c != 0 {
			return c
		}

		return compareEnds(a.ev.GetEnd(), b.ev.GetEnd())
	})

	for i := 0; i < len(entries)-1; i++ {
		prev, next := entries[i], entries[i+1]

		prevEnd := prev.ev.GetEnd()
		nextStart := next.ev.GetStart()

		// open-ended always overlaps whatever follows
		if prevEnd != nil && !prevEnd.After(nextStart) {
			continue
		}

		if !autoFix {
			return nil, &ConflictError{
				PrevID:    prev.ev.GetID(),
				NextID:    next.ev.GetID(),
				PrevEnd:   prevEnd,
				NextStart: nextStart,
			}
		}

		end := nextStart
		prev.ev = prev.ev.WithEnd(&end)

		// truncation may leave nothing of the event
		if prev.ev.GetStart().Equal(end) {
			prev.collapsed = true
		} else if !prev.created {
			prev.updated = true
		}
	}

	plan := &Plan[E]{DeleteIDs: slices.Clone(deleteIDs)}

	for _, en := range entries {
		switch {
		case en.collapsed:
			if id := en.ev.GetID(); id != 0 && !slices.Contains(plan.DeleteIDs, id) {
				plan.DeleteIDs = append(plan.DeleteIDs, id)
			}
		case en.created:
			plan.Create = append(plan.Create, en.ev)
		case en.updated:
			plan.Update = append(plan.Update, en.ev)
		}
	}

	return plan, nil
}

// compareEnds orders end times with nil treated as +inf.
func compareEnds(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
