package report

import "gamgmt/internal/management"

// PrintGoals prints the goal collection, each goal followed by its detail
// section when it has one
func (p *Printer) PrintGoals(goals *management.Goals) {
	p.println("------ Goals Collection -------")
	p.printPagination(goals.Page())

	for _, goal := range items(goals) {
		p.printf("Goal ID     = %s\n", str(goal.ID))
		p.printf("Kind        = %s\n", str(goal.Kind))
		p.printf("Self Link        = %s\n", str(goal.SelfLink))
		p.printf("Account ID               = %s\n", str(goal.AccountID))
		p.printf("Web Property ID          = %s\n", str(goal.WebPropertyID))
		p.printf("Internal Web Property ID = %s\n", str(goal.InternalWebPropertyID))
		p.printf("Profile ID               = %s\n", str(goal.ProfileID))
		p.printf("Goal Name   = %s\n", str(goal.Name))
		p.printf("Goal Value  = %s\n", float(goal.Value))
		p.printf("Goal Active = %s\n", boolean(goal.Active))
		p.printf("Goal Type   = %s\n", str(goal.Type))
		p.printf("Created     = %s\n", str(goal.Created))
		p.printf("Updated     = %s\n", str(goal.Updated))
		p.printf("Parent link href = %s\n", href(goal.ParentLink))
		p.printf("Parent link type = %s\n", linkType(goal.ParentLink))

		p.PrintGoalDetail(goal.Detail)
		p.blank()
	}

	p.printEmpty(goals.Len(), "goals")
}

// PrintGoalDetail prints the section matching the detail's kind. A nil
// detail prints nothing.
func (p *Printer) PrintGoalDetail(detail management.GoalDetail) {
	switch d := detail.(type) {
	case *management.URLDestinationDetail:
		p.PrintURLDestinationDetail(d)
	case *management.VisitTimeOnSiteDetail:
		p.PrintVisitTimeOnSiteDetail(d)
	case *management.VisitNumPagesDetail:
		p.PrintVisitNumPagesDetail(d)
	case *management.EventDetail:
		p.PrintEventDetail(d)
	}
}

func (p *Printer) PrintURLDestinationDetail(d *management.URLDestinationDetail) {
	p.println("------ Url Destination Goal -------")
	p.printf("Goal URL            = %s\n", str(d.URL))
	p.printf("Case Sensitive      = %s\n", boolean(d.CaseSensitive))
	p.printf("Match Type          = %s\n", str(d.MatchType))
	p.printf("First Step Required = %s\n", boolean(d.FirstStepRequired))

	p.println("------ Url Destination Goal Steps -------")
	for _, step := range d.Steps {
		p.printf("Step Number  = %s\n", num(step.Number))
		p.printf("Step Name    = %s\n", str(step.Name))
		p.printf("Step URL     = %s\n", str(step.URL))
	}

	if len(d.Steps) == 0 {
		p.println("No Steps Configured")
	}
}

func (p *Printer) PrintVisitTimeOnSiteDetail(d *management.VisitTimeOnSiteDetail) {
	p.println("------ Visit Time On Site Goal -------")
	p.printComparison(d.Comparison)
}

func (p *Printer) PrintVisitNumPagesDetail(d *management.VisitNumPagesDetail) {
	p.println("------ Visit Num Pages Goal -------")
	p.printComparison(d.Comparison)
}

func (p *Printer) printComparison(c management.Comparison) {
	p.printf("Comparison Type  = %s\n", str(c.ComparisonType))
	p.printf("comparison Value = %s\n", number(c.ComparisonValue))
}

// PrintEventDetail prints each condition in order. Conditions outside
// CATEGORY, ACTION and LABEL print their comparison instead of an expression.
func (p *Printer) PrintEventDetail(d *management.EventDetail) {
	p.println("------ Event Goal -------")
	p.printf("Use Event Value  = %s\n", boolean(d.UseEventValue))

	for _, cond := range d.EventConditions {
		p.printf("Type             = %s\n", str(cond.Type))

		if cond.MatchesExpression() {
			p.printf("Match Type       = %s\n", str(cond.MatchType))
			p.printf("Expression       = %s\n", str(cond.Expression))
		} else {
			p.printf("Comparison Type  = %s\n", str(cond.ComparisonType))
			p.printf("Comparison Value = %s\n", number(cond.ComparisonValue))
		}
	}
}
