//nolint:funlen,lll // ok for tests
package processing

import (
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/acc-hotlap-merger-go/pkg/archive"
)

type memberProvider struct {
	members []archive.Member
}

func (p *memberProvider) Visit(fn func(m archive.Member) error) error {
	for _, m := range p.members {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *memberProvider) Close() error { return nil }

func member(name, content string) archive.Member {
	return archive.Member{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func sessionDoc(playerID, firstName, lastName string, carModel int, laps string) string {
	return `{"laps":[` + laps + `],"sessionResult":{"leaderBoardLines":[{"car":{"carId":1,"carModel":` +
		strconv.Itoa(carModel) + `,"drivers":[{"playerId":"` + playerID + `","firstName":"` + firstName +
		`","lastName":"` + lastName + `"}]}}]}}`
}

func lap(laptime int, valid bool) string {
	validStr := "false"
	if valid {
		validStr = "true"
	}
	third := laptime - 2*(laptime/3)
	return `{"carId":1,"driverIndex":0,"laptime":` + strconv.Itoa(laptime) +
		`,"isValidForBest":` + validStr +
		`,"splits":[` + strconv.Itoa(laptime/3) + `,` + strconv.Itoa(laptime/3) + `,` + strconv.Itoa(third) + `]}`
}

func TestAggregator_CrossSessionMerge(t *testing.T) {
	provider := &memberProvider{members: []archive.Member{
		member("sessionA.json", sessionDoc("P1", "Max", "Power", 5, lap(90000, true)+","+lap(80000, false))),
		member("sessionB.json", sessionDoc("P1", "Max", "Power", 5, lap(85000, true))),
	}}
	entries, err := NewAggregator().Aggregate(provider)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, BestLapKey{PlayerID: "P1", CarModel: 5}, entries[0].Key)
	// invalid 80000 ignored, 90000 superseded by session B
	assert.Equal(t, 85000, entries[0].Lap.Laptime)
	assert.Equal(t, 0, entries[0].Gap)
}

func TestAggregator_SingleSessionMatchesReduce(t *testing.T) {
	doc := sessionDoc("P1", "Max", "Power", 5, lap(90000, true))
	provider := &memberProvider{members: []archive.Member{member("s.json", doc)}}

	entries, err := NewAggregator().Aggregate(provider)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 90000, entries[0].Lap.Laptime)
	assert.Equal(t, "Max", entries[0].Lap.FirstName)
}

func TestAggregator_TieKeepsEncounterOrder(t *testing.T) {
	provider := &memberProvider{members: []archive.Member{
		member("a.json", sessionDoc("P1", "Max", "Power", 5, lap(70000, true))),
		member("b.json", sessionDoc("P2", "Jo", "Fast", 7, lap(70000, true))),
	}}
	entries, err := NewAggregator().Aggregate(provider)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "P1", entries[0].Key.PlayerID)
	assert.Equal(t, "P2", entries[1].Key.PlayerID)
	assert.Equal(t, 0, entries[0].Gap)
	assert.Equal(t, 0, entries[1].Gap)
}

func TestAggregator_GapAndOrdering(t *testing.T) {
	provider := &memberProvider{members: []archive.Member{
		member("a.json", sessionDoc("P2", "Jo", "Fast", 7, lap(71500, true))),
		member("b.json", sessionDoc("P1", "Max", "Power", 5, lap(70000, true))),
	}}
	entries, err := NewAggregator().Aggregate(provider)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	// sorted ascending by lap time, fastest first with gap 0
	assert.Equal(t, "P1", entries[0].Key.PlayerID)
	assert.Equal(t, 0, entries[0].Gap)
	assert.Equal(t, "P2", entries[1].Key.PlayerID)
	assert.Equal(t, 1500, entries[1].Gap)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Lap.Laptime, entries[i].Lap.Laptime)
	}
}

func TestAggregator_IgnoresNonJSONMembers(t *testing.T) {
	provider := &memberProvider{members: []archive.Member{
		member("readme.txt", "this is not json at all"),
		member("s.json", sessionDoc("P1", "Max", "Power", 5, lap(90000, true))),
	}}
	entries, err := NewAggregator().Aggregate(provider)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAggregator_EmptyArchive(t *testing.T) {
	tests := []struct {
		name    string
		members []archive.Member
	}{
		{name: "no members", members: []archive.Member{}},
		{name: "no qualifying members", members: []archive.Member{member("notes.txt", "x")}},
		{
			name: "no valid laps",
			members: []archive.Member{
				member("s.json", sessionDoc("P1", "Max", "Power", 5, lap(90000, false))),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAggregator().Aggregate(&memberProvider{members: tt.members})
			assert.ErrorIs(t, err, ErrNoValidLaps)
		})
	}
}

func TestAggregator_DecodeFailureAborts(t *testing.T) {
	provider := &memberProvider{members: []archive.Member{
		member("good.json", sessionDoc("P1", "Max", "Power", 5, lap(90000, true))),
		member("broken.json", "{not valid json"),
	}}
	_, err := NewAggregator().Aggregate(provider)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}
