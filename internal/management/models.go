package management

import (
	"encoding/json"
	"fmt"
)

// Every scalar attribute is optional: the API omits fields it has no value
// for, and partial records must still be printable.

// Link is a parent or child link attached to a resource
type Link struct {
	Href *string `json:"href,omitempty"`
	Type *string `json:"type,omitempty"`
}

// Pagination holds the paging metadata shared by every collection response
type Pagination struct {
	ItemsPerPage *int64  `json:"itemsPerPage,omitempty"`
	TotalResults *int64  `json:"totalResults,omitempty"`
	StartIndex   *int64  `json:"startIndex,omitempty"`
	PreviousLink *string `json:"previousLink,omitempty"`
	NextLink     *string `json:"nextLink,omitempty"`
}

// Collection is one page of a Management API list response
type Collection[T any] struct {
	Pagination
	Kind     *string `json:"kind,omitempty"`
	Username *string `json:"username,omitempty"`
	Items    []T     `json:"items,omitempty"`
}

// First returns the first item of the page, if any
func (c *Collection[T]) First() (T, bool) {
	var zero T
	if c == nil || len(c.Items) == 0 {
		return zero, false
	}
	return c.Items[0], true
}

// Len returns the number of items on the page
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Page returns the paging metadata, zero for a nil collection
func (c *Collection[T]) Page() Pagination {
	if c == nil {
		return Pagination{}
	}
	return c.Pagination
}

type (
	Accounts      = Collection[Account]
	WebProperties = Collection[WebProperty]
	Profiles      = Collection[Profile]
	Goals         = Collection[Goal]
	Segments      = Collection[Segment]
)

// Account is a top level Analytics account
type Account struct {
	ID        *string `json:"id,omitempty"`
	Kind      *string `json:"kind,omitempty"`
	SelfLink  *string `json:"selfLink,omitempty"`
	Name      *string `json:"name,omitempty"`
	Created   *string `json:"created,omitempty"`
	Updated   *string `json:"updated,omitempty"`
	ChildLink *Link   `json:"childLink,omitempty"`
}

// WebProperty belongs to an account
type WebProperty struct {
	Kind                  *string `json:"kind,omitempty"`
	AccountID             *string `json:"accountId,omitempty"`
	ID                    *string `json:"id,omitempty"`
	InternalWebPropertyID *string `json:"internalWebPropertyId,omitempty"`
	Name                  *string `json:"name,omitempty"`
	WebsiteURL            *string `json:"websiteUrl,omitempty"`
	Created               *string `json:"created,omitempty"`
	Updated               *string `json:"updated,omitempty"`
	SelfLink              *string `json:"selfLink,omitempty"`
	ParentLink            *Link   `json:"parentLink,omitempty"`
	ChildLink             *Link   `json:"childLink,omitempty"`
}

// Profile (view) belongs to a web property
type Profile struct {
	Kind                         *string `json:"kind,omitempty"`
	AccountID                    *string `json:"accountId,omitempty"`
	WebPropertyID                *string `json:"webPropertyId,omitempty"`
	InternalWebPropertyID        *string `json:"internalWebPropertyId,omitempty"`
	ID                           *string `json:"id,omitempty"`
	Name                         *string `json:"name,omitempty"`
	Currency                     *string `json:"currency,omitempty"`
	Timezone                     *string `json:"timezone,omitempty"`
	DefaultPage                  *string `json:"defaultPage,omitempty"`
	ExcludeQueryParameters       *string `json:"excludeQueryParameters,omitempty"`
	SiteSearchCategoryParameters *string `json:"siteSearchCategoryParameters,omitempty"`
	SiteSearchQueryParameters    *string `json:"siteSearchQueryParameters,omitempty"`
	Created                      *string `json:"created,omitempty"`
	Updated                      *string `json:"updated,omitempty"`
	SelfLink                     *string `json:"selfLink,omitempty"`
	ParentLink                   *Link   `json:"parentLink,omitempty"`
	ChildLink                    *Link   `json:"childLink,omitempty"`
}

// Goal belongs to a profile. Detail is nil when the API sent no detail
// section, otherwise one of *URLDestinationDetail, *VisitTimeOnSiteDetail,
// *VisitNumPagesDetail or *EventDetail.
type Goal struct {
	ID                    *string    `json:"id,omitempty"`
	Kind                  *string    `json:"kind,omitempty"`
	SelfLink              *string    `json:"selfLink,omitempty"`
	AccountID             *string    `json:"accountId,omitempty"`
	WebPropertyID         *string    `json:"webPropertyId,omitempty"`
	InternalWebPropertyID *string    `json:"internalWebPropertyId,omitempty"`
	ProfileID             *string    `json:"profileId,omitempty"`
	Name                  *string    `json:"name,omitempty"`
	Value                 *float64   `json:"value,omitempty"`
	Active                *bool      `json:"active,omitempty"`
	Type                  *string    `json:"type,omitempty"`
	Created               *string    `json:"created,omitempty"`
	Updated               *string    `json:"updated,omitempty"`
	ParentLink            *Link      `json:"parentLink,omitempty"`
	Detail                GoalDetail `json:"-"`
}

// GoalDetail describes how a goal completion is measured
type GoalDetail interface {
	isGoalDetail()
}

// URLDestinationDetail matches a destination URL, optionally through a funnel
type URLDestinationDetail struct {
	URL               *string    `json:"url,omitempty"`
	CaseSensitive     *bool      `json:"caseSensitive,omitempty"`
	MatchType         *string    `json:"matchType,omitempty"`
	FirstStepRequired *bool      `json:"firstStepRequired,omitempty"`
	Steps             []GoalStep `json:"steps,omitempty"`
}

// GoalStep is one funnel step of a URL destination goal
type GoalStep struct {
	Number *int64  `json:"number,omitempty"`
	Name   *string `json:"name,omitempty"`
	URL    *string `json:"url,omitempty"`
}

// Comparison is a threshold test; int64 values may arrive quoted
type Comparison struct {
	ComparisonType  *string      `json:"comparisonType,omitempty"`
	ComparisonValue *json.Number `json:"comparisonValue,omitempty"`
}

// VisitTimeOnSiteDetail compares session duration
type VisitTimeOnSiteDetail struct {
	Comparison
}

// VisitNumPagesDetail compares pages per session
type VisitNumPagesDetail struct {
	Comparison
}

// EventDetail matches events by their conditions
type EventDetail struct {
	UseEventValue   *bool            `json:"useEventValue,omitempty"`
	EventConditions []EventCondition `json:"eventConditions,omitempty"`
}

// Event condition types
const (
	EventCategory = "CATEGORY"
	EventAction   = "ACTION"
	EventLabel    = "LABEL"
	EventValue    = "VALUE"
)

// EventCondition either matches an expression (CATEGORY, ACTION, LABEL) or
// compares a value (VALUE and anything unrecognised)
type EventCondition struct {
	Type            *string      `json:"type,omitempty"`
	MatchType       *string      `json:"matchType,omitempty"`
	Expression      *string      `json:"expression,omitempty"`
	ComparisonType  *string      `json:"comparisonType,omitempty"`
	ComparisonValue *json.Number `json:"comparisonValue,omitempty"`
}

// MatchesExpression reports whether the condition is expression shaped
func (c EventCondition) MatchesExpression() bool {
	if c.Type == nil {
		return false
	}
	switch *c.Type {
	case EventCategory, EventAction, EventLabel:
		return true
	}
	return false
}

func (*URLDestinationDetail) isGoalDetail()  {}
func (*VisitTimeOnSiteDetail) isGoalDetail() {}
func (*VisitNumPagesDetail) isGoalDetail()   {}
func (*EventDetail) isGoalDetail()           {}

type goalFields Goal

type goalWire struct {
	goalFields
	URLDestinationDetails  *URLDestinationDetail  `json:"urlDestinationDetails,omitempty"`
	VisitTimeOnSiteDetails *VisitTimeOnSiteDetail `json:"visitTimeOnSiteDetails,omitempty"`
	VisitNumPagesDetails   *VisitNumPagesDetail   `json:"visitNumPagesDetails,omitempty"`
	EventDetails           *EventDetail           `json:"eventDetails,omitempty"`
}

// UnmarshalJSON picks the detail section in the order URL destination,
// time on site, pages per visit, event. Later sections are dropped.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var w goalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*g = Goal(w.goalFields)
	switch {
	case w.URLDestinationDetails != nil:
		g.Detail = w.URLDestinationDetails
	case w.VisitTimeOnSiteDetails != nil:
		g.Detail = w.VisitTimeOnSiteDetails
	case w.VisitNumPagesDetails != nil:
		g.Detail = w.VisitNumPagesDetails
	case w.EventDetails != nil:
		g.Detail = w.EventDetails
	default:
		g.Detail = nil
	}
	return nil
}

// MarshalJSON writes the detail back under its API field name
func (g Goal) MarshalJSON() ([]byte, error) {
	w := goalWire{goalFields: goalFields(g)}
	switch d := g.Detail.(type) {
	case nil:
	case *URLDestinationDetail:
		w.URLDestinationDetails = d
	case *VisitTimeOnSiteDetail:
		w.VisitTimeOnSiteDetails = d
	case *VisitNumPagesDetail:
		w.VisitNumPagesDetails = d
	case *EventDetail:
		w.EventDetails = d
	default:
		return nil, fmt.Errorf("unsupported goal detail %T", d)
	}
	return json.Marshal(w)
}

// Segment is an advanced segment visible to the user
type Segment struct {
	ID         *string `json:"id,omitempty"`
	SegmentID  *string `json:"segmentId,omitempty"`
	Kind       *string `json:"kind,omitempty"`
	SelfLink   *string `json:"selfLink,omitempty"`
	Name       *string `json:"name,omitempty"`
	Definition *string `json:"definition,omitempty"`
	Type       *string `json:"type,omitempty"`
	Created    *string `json:"created,omitempty"`
	Updated    *string `json:"updated,omitempty"`
}

// String returns a pointer to s, for building records in code
func String(s string) *string { return &s }

// Int64 returns a pointer to v
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// Float64 returns a pointer to v
func Float64(v float64) *float64 { return &v }

// Number returns a pointer to the decimal form of v
func Number(v int64) *json.Number {
	n := json.Number(fmt.Sprintf("%d", v))
	return &n
}

// Value dereferences an optional string, returning "" when absent
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
