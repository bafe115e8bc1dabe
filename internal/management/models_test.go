package management

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalDecodesURLDestination(t *testing.T) {
	raw := `{
		"id": "1",
		"name": "Signup",
		"value": 10.5,
		"active": true,
		"urlDestinationDetails": {
			"url": "/thanks",
			"caseSensitive": false,
			"matchType": "HEAD",
			"firstStepRequired": true,
			"steps": [{"number": 1, "name": "Cart", "url": "/cart"}]
		}
	}`

	var g Goal
	require.NoError(t, json.Unmarshal([]byte(raw), &g))

	assert.Equal(t, "1", Value(g.ID))
	assert.Equal(t, 10.5, *g.Value)
	d, ok := g.Detail.(*URLDestinationDetail)
	require.True(t, ok, "detail type %T", g.Detail)
	assert.Equal(t, "/thanks", Value(d.URL))
	require.Len(t, d.Steps, 1)
	assert.Equal(t, int64(1), *d.Steps[0].Number)
}

func TestGoalDetailPriority(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want GoalDetail
	}{
		{
			name: "url wins over everything",
			raw:  `{"eventDetails":{},"visitNumPagesDetails":{},"urlDestinationDetails":{"url":"/a"}}`,
			want: &URLDestinationDetail{URL: String("/a")},
		},
		{
			name: "time on site before pages",
			raw:  `{"visitNumPagesDetails":{"comparisonType":"GREATER_THAN"},"visitTimeOnSiteDetails":{"comparisonType":"LESS_THAN"}}`,
			want: &VisitTimeOnSiteDetail{Comparison{ComparisonType: String("LESS_THAN")}},
		},
		{
			name: "pages before event",
			raw:  `{"eventDetails":{"useEventValue":true},"visitNumPagesDetails":{"comparisonValue":"3"}}`,
			want: &VisitNumPagesDetail{Comparison{ComparisonValue: Number(3)}},
		},
		{
			name: "event alone",
			raw:  `{"eventDetails":{"useEventValue":true}}`,
			want: &EventDetail{UseEventValue: Bool(true)},
		},
		{
			name: "none",
			raw:  `{"id":"9"}`,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var g Goal
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &g))
			assert.Equal(t, tc.want, g.Detail)
		})
	}
}

func TestComparisonValueAcceptsQuotedAndBareNumbers(t *testing.T) {
	var quoted, bare VisitTimeOnSiteDetail
	require.NoError(t, json.Unmarshal([]byte(`{"comparisonValue":"120"}`), &quoted))
	require.NoError(t, json.Unmarshal([]byte(`{"comparisonValue":120}`), &bare))

	assert.Equal(t, "120", quoted.ComparisonValue.String())
	assert.Equal(t, "120", bare.ComparisonValue.String())
}

func TestGoalMarshalKeepsDetailField(t *testing.T) {
	g := Goal{
		ID: String("7"),
		Detail: &EventDetail{
			UseEventValue: Bool(false),
			EventConditions: []EventCondition{
				{Type: String(EventCategory), MatchType: String("EXACT"), Expression: String("video")},
			},
		},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "eventDetails")
	assert.NotContains(t, fields, "Detail")

	var back Goal
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g, back)
}

func TestEventConditionMatchesExpression(t *testing.T) {
	for _, typ := range []string{EventCategory, EventAction, EventLabel} {
		assert.True(t, EventCondition{Type: String(typ)}.MatchesExpression(), typ)
	}
	assert.False(t, EventCondition{Type: String(EventValue)}.MatchesExpression())
	assert.False(t, EventCondition{Type: String("SOMETHING_ELSE")}.MatchesExpression())
	assert.False(t, EventCondition{}.MatchesExpression())
}

func TestCollectionFirst(t *testing.T) {
	var empty *Accounts
	_, ok := empty.First()
	assert.False(t, ok)
	assert.Equal(t, 0, empty.Len())

	c := &Accounts{Items: []Account{{ID: String("A1")}, {ID: String("A2")}}}
	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, "A1", Value(first.ID))
}
