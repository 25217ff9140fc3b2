package processing

import (
	"github.com/mpapenbr/acc-hotlap-merger-go/log"
	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/model"
)

// BestLapKey is the grouping identity for best laps. A driver may set best
// laps in more than one car model, each of them is tracked separately.
type BestLapKey struct {
	PlayerID string
	CarModel int
}

// BestLapRecord holds the fastest valid lap seen so far for one key.
type BestLapRecord struct {
	Laptime   int
	Splits    []int
	FirstName string
	LastName  string
}

// SessionBest is the result of reducing one session. Order lists the keys in
// first-encounter order so that later tie-breaking stays deterministic.
type SessionBest struct {
	Laps  map[BestLapKey]*BestLapRecord
	Order []BestLapKey
}

type carDriverKey struct {
	carID       int
	driverIndex int
}

type SessionProcessor struct {
	byCarDriver map[carDriverKey]BestLapKey
	driverByID  map[string]model.Driver
	log         *log.Logger
}

type SessionProcessorOption func(sp *SessionProcessor)

func WithLogger(l *log.Logger) SessionProcessorOption {
	return func(sp *SessionProcessor) {
		sp.log = l
	}
}

func NewSessionProcessor(opts ...SessionProcessorOption) *SessionProcessor {
	sp := &SessionProcessor{
		log: log.Default().Named("processing.session"),
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Process reduces one session record to the best valid lap per key. Laps whose
// (carId, driverIndex) is not present in the leaderboard are skipped, such laps
// occur after driver swaps that are not reflected in the leaderboard snapshot.
func (p *SessionProcessor) Process(rec *model.SessionRecord) *SessionBest {
	p.buildLookups(rec)

	best := &SessionBest{Laps: map[BestLapKey]*BestLapRecord{}}
	for i := range rec.Laps {
		lap := &rec.Laps[i]
		key, ok := p.byCarDriver[carDriverKey{lap.CarID, lap.DriverIndex}]
		if !ok {
			p.log.Debug("lap without leaderboard entry skipped",
				log.Int("carId", lap.CarID), log.Int("driverIndex", lap.DriverIndex))
			continue
		}
		if !lap.IsValidForBest {
			continue
		}
		if cur, found := best.Laps[key]; !found || lap.Laptime < cur.Laptime {
			if !found {
				best.Order = append(best.Order, key)
			}
			driver := p.driverByID[key.PlayerID]
			best.Laps[key] = &BestLapRecord{
				Laptime:   lap.Laptime,
				Splits:    lap.Splits,
				FirstName: driver.FirstName,
				LastName:  driver.LastName,
			}
		}
	}
	return best
}

func (p *SessionProcessor) buildLookups(rec *model.SessionRecord) {
	p.byCarDriver = map[carDriverKey]BestLapKey{}
	p.driverByID = map[string]model.Driver{}
	for i := range rec.SessionResult.LeaderBoardLines {
		car := &rec.SessionResult.LeaderBoardLines[i].Car
		for idx := range car.Drivers {
			driver := &car.Drivers[idx]
			key := carDriverKey{car.CarID, idx}
			if _, dup := p.byCarDriver[key]; dup {
				// known anomaly in some result files, last write wins
				p.log.Warn("duplicate (carId, driverIndex) in leaderboard",
					log.Int("carId", car.CarID), log.Int("driverIndex", idx))
			}
			p.byCarDriver[key] = BestLapKey{PlayerID: driver.PlayerID, CarModel: car.CarModel}
			p.driverByID[driver.PlayerID] = *driver
		}
	}
}
