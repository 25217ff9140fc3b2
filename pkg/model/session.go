package model

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// SessionRecord is the decoded content of a single ACC session result file.
type SessionRecord struct {
	SessionType   string        `json:"sessionType"`
	TrackName     string        `json:"trackName"`
	Laps          []Lap         `json:"laps"`
	SessionResult SessionResult `json:"sessionResult"`
}

type SessionResult struct {
	BestLap          int               `json:"bestlap"`
	IsWetSession     int               `json:"isWetSession"`
	LeaderBoardLines []LeaderBoardLine `json:"leaderBoardLines"`
}

// LeaderBoardLine is a car's result line for the session.
type LeaderBoardLine struct {
	Car Car `json:"car"`
}

type Car struct {
	CarID      int      `json:"carId"`
	CarModel   int      `json:"carModel"`
	TeamName   string   `json:"teamName"`
	RaceNumber int      `json:"raceNumber"`
	Drivers    []Driver `json:"drivers"`
}

type Driver struct {
	PlayerID  string `json:"playerId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ShortName string `json:"shortName"`
}

type Lap struct {
	CarID          int   `json:"carId"`
	DriverIndex    int   `json:"driverIndex"`
	Laptime        int   `json:"laptime"`
	IsValidForBest bool  `json:"isValidForBest"`
	Splits         []int `json:"splits"`
}

// ParseSessionRecord decodes a raw session result document.
func ParseSessionRecord(data []byte) (*SessionRecord, error) {
	rec := &SessionRecord{}
	if err := oj.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("could not decode session record: %w", err)
	}
	return rec, nil
}
