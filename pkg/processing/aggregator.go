package processing

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/acc-hotlap-merger-go/log"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/archive"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/model"
)

var ErrNoValidLaps = errors.New("no valid laps found in archive")

// only members with this suffix are considered session data
const dataFileSuffix = ".json"

// RankedEntry is one line of the final result, sorted by lap time.
type RankedEntry struct {
	Key BestLapKey
	Lap BestLapRecord
	// Gap is the distance to the fastest lap of the whole result set, in ms.
	Gap int
}

// Aggregator folds the per-session best laps of all archive members into one
// table keyed by (playerId, carModel). It exclusively owns the accumulator,
// processing is strictly sequential.
type Aggregator struct {
	best    map[BestLapKey]*BestLapRecord
	order   []BestLapKey // first-seen order, tie-breaker for equal lap times
	session *SessionProcessor
	log     *log.Logger
}

type AggregatorOption func(a *Aggregator)

func WithSessionProcessor(sp *SessionProcessor) AggregatorOption {
	return func(a *Aggregator) {
		a.session = sp
	}
}

func WithAggregatorLogger(l *log.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.log = l
	}
}

func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		best: map[BestLapKey]*BestLapRecord{},
		log:  log.Default().Named("processing.aggregate"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.session == nil {
		a.session = NewSessionProcessor()
	}
	return a
}

// Aggregate reads all qualifying members of the archive, reduces each session
// and merges the results. The first decode failure aborts the whole run.
func (a *Aggregator) Aggregate(provider archive.MemberProvider) ([]RankedEntry, error) {
	err := provider.Visit(func(m archive.Member) error {
		if !strings.HasSuffix(m.Name, dataFileSuffix) {
			return nil
		}
		rec, err := a.readMember(m)
		if err != nil {
			return err
		}
		a.merge(a.session.Process(rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.finalize()
}

func (a *Aggregator) readMember(m archive.Member) (*model.SessionRecord, error) {
	rc, err := m.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("could not read archive member %s: %w", m.Name, err)
	}
	rec, err := model.ParseSessionRecord(data)
	if err != nil {
		return nil, fmt.Errorf("archive member %s: %w", m.Name, err)
	}
	a.log.Debug("session decoded", log.String("member", m.Name),
		log.Int("laps", len(rec.Laps)))
	return rec, nil
}

func (a *Aggregator) merge(session *SessionBest) {
	for _, key := range session.Order {
		rec := session.Laps[key]
		if cur, found := a.best[key]; !found || rec.Laptime < cur.Laptime {
			if !found {
				a.order = append(a.order, key)
			}
			a.best[key] = rec
		}
	}
}

func (a *Aggregator) finalize() ([]RankedEntry, error) {
	if len(a.order) == 0 {
		return nil, ErrNoValidLaps
	}
	records := lo.Map(a.order, func(key BestLapKey, _ int) *BestLapRecord {
		return a.best[key]
	})
	fastest := lo.MinBy(records, func(x, y *BestLapRecord) bool {
		return x.Laptime < y.Laptime
	}).Laptime

	entries := make([]RankedEntry, 0, len(a.order))
	for i, key := range a.order {
		entries = append(entries, RankedEntry{
			Key: key,
			Lap: *records[i],
			Gap: records[i].Laptime - fastest,
		})
	}
	slices.SortStableFunc(entries, func(x, y RankedEntry) int {
		return x.Lap.Laptime - y.Lap.Laptime
	})
	return entries, nil
}
