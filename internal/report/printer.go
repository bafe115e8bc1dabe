package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gamgmt/internal/management"
)

// Printer writes the plain-text report. The first write error is kept and
// later writes are skipped.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) println(s string) {
	p.printf("%s\n", s)
}

func (p *Printer) blank() {
	p.printf("\n")
}

// PrintAccounts prints the account collection
func (p *Printer) PrintAccounts(accounts *management.Accounts) {
	p.println("------ Account Collection -------")
	p.printPagination(accounts.Page())

	for _, account := range items(accounts) {
		p.printf("Account ID      = %s\n", str(account.ID))
		p.printf("Kind            = %s\n", str(account.Kind))
		p.printf("Self Link       = %s\n", str(account.SelfLink))
		p.printf("Account Name    = %s\n", str(account.Name))
		p.printf("Created         = %s\n", str(account.Created))
		p.printf("Updated         = %s\n", str(account.Updated))
		p.printf("Child link href = %s\n", href(account.ChildLink))
		p.printf("Child link type = %s\n", linkType(account.ChildLink))
		p.blank()
	}

	p.printEmpty(accounts.Len(), "accounts")
}

// PrintWebProperties prints the web property collection
func (p *Printer) PrintWebProperties(webProperties *management.WebProperties) {
	p.println("------ Web Properties Collection -------")
	p.printPagination(webProperties.Page())

	for _, wp := range items(webProperties) {
		p.printf("Kind               = %s\n", str(wp.Kind))
		p.printf("Account ID         = %s\n", str(wp.AccountID))
		p.printf("Web Property ID    = %s\n", str(wp.ID))
		p.printf("Internal Web Property ID = %s\n", str(wp.InternalWebPropertyID))
		p.printf("Website URL        = %s\n", str(wp.WebsiteURL))
		p.printf("Created            = %s\n", str(wp.Created))
		p.printf("Updated            = %s\n", str(wp.Updated))
		p.printf("Self Link          = %s\n", str(wp.SelfLink))
		p.printf("Parent link href   = %s\n", href(wp.ParentLink))
		p.printf("Parent link type   = %s\n", linkType(wp.ParentLink))
		p.printf("Child link href    = %s\n", href(wp.ChildLink))
		p.printf("Child link type    = %s\n", linkType(wp.ChildLink))
		p.blank()
	}

	p.printEmpty(webProperties.Len(), "webproperties")
}

// PrintProfiles prints the profile collection
func (p *Printer) PrintProfiles(profiles *management.Profiles) {
	p.println("------ Profiles Collection -------")
	p.printPagination(profiles.Page())

	for _, profile := range items(profiles) {
		p.printf("Kind                      = %s\n", str(profile.Kind))
		p.printf("Account ID                = %s\n", str(profile.AccountID))
		p.printf("Web Property ID           = %s\n", str(profile.WebPropertyID))
		p.printf("Internal Web Property ID = %s\n", str(profile.InternalWebPropertyID))
		p.printf("Profile ID                = %s\n", str(profile.ID))
		p.printf("Profile Name              = %s\n", str(profile.Name))
		p.printf("Currency         = %s\n", str(profile.Currency))
		p.printf("Timezone         = %s\n", str(profile.Timezone))
		p.printf("Default Page     = %s\n", str(profile.DefaultPage))
		p.printf("Exclude Query Parameters        = %s\n", str(profile.ExcludeQueryParameters))
		p.printf("Site Search Category Parameters = %s\n", str(profile.SiteSearchCategoryParameters))
		p.printf("Site Search Query Parameters    = %s\n", str(profile.SiteSearchQueryParameters))
		p.printf("Created          = %s\n", str(profile.Created))
		p.printf("Updated          = %s\n", str(profile.Updated))
		p.printf("Self Link        = %s\n", str(profile.SelfLink))
		p.printf("Parent link href = %s\n", href(profile.ParentLink))
		p.printf("Parent link type = %s\n", linkType(profile.ParentLink))
		p.printf("Child link href  = %s\n", href(profile.ChildLink))
		p.printf("Child link type  = %s\n", linkType(profile.ChildLink))
		p.blank()
	}

	p.printEmpty(profiles.Len(), "profiles")
}

// PrintSegments prints the segment collection
func (p *Printer) PrintSegments(segments *management.Segments) {
	p.println("------ Segments Collection -------")
	p.printPagination(segments.Page())

	for _, segment := range items(segments) {
		p.printf("Segment ID = %s\n", str(segment.ID))
		p.printf("Kind       = %s\n", str(segment.Kind))
		p.printf("Self Link  = %s\n", str(segment.SelfLink))
		p.printf("Name       = %s\n", str(segment.Name))
		p.printf("Definition = %s\n", str(segment.Definition))
		p.printf("Created    = %s\n", str(segment.Created))
		p.printf("Updated    = %s\n", str(segment.Updated))
		p.blank()
	}

	p.printEmpty(segments.Len(), "segments")
}

// PrintPagination prints the paging block. Previous and next links only
// appear when the API returned them.
func (p *Printer) PrintPagination(page management.Pagination) {
	p.printf("Items per page = %s\n", num(page.ItemsPerPage))
	p.printf("Total Results  = %s\n", num(page.TotalResults))
	p.printf("Start Index    = %s\n", num(page.StartIndex))

	if page.PreviousLink != nil && *page.PreviousLink != "" {
		p.printf("Previous Link  = %s\n", *page.PreviousLink)
	}
	if page.NextLink != nil && *page.NextLink != "" {
		p.printf("Next Link      = %s\n", *page.NextLink)
	}
}

func (p *Printer) printEmpty(n int, entities string) {
	if n == 0 {
		p.printf("No %s found.\n", entities)
		p.blank()
	}
}

func (p *Printer) printPagination(page management.Pagination) {
	p.PrintPagination(page)
	p.blank()
}

func items[T any](c *management.Collection[T]) []T {
	if c == nil {
		return nil
	}
	return c.Items
}

// Absent values render as the empty string.

func str(s *string) string {
	return management.Value(s)
}

func num(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func float(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolean(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func number(v *json.Number) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func href(l *management.Link) string {
	if l == nil {
		return ""
	}
	return str(l.Href)
}

func linkType(l *management.Link) string {
	if l == nil {
		return ""
	}
	return str(l.Type)
}
