package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
	"github.com/heartmarshall/medicabinet-backend/internal/service/cabinet"
)

const helpText = `I didn't understand that. Try:
  +Napa 10            add stock
  -Napa 2             use stock
  ?Napa               search
  ?all                list everything
  /stats /alerts /history <name> /delete <name>`

func renderCommand(res *cabinet.CommandResult) string {
	switch {
	case res.Add != nil:
		return renderAdd(res.Add)
	case res.Use != nil:
		return renderUse(res.Intent.Name, res.Use)
	case res.Search != nil:
		return renderSearch(res.Intent.Name, res.Search)
	case res.List != nil:
		return renderList(res.List)
	}
	return helpText
}

func renderAdd(r *cabinet.AddResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Added %d %s of %s. Now: %d %s.",
		r.Added, r.Medicine.Unit, r.Medicine.Name, r.Medicine.Quantity, r.Medicine.Unit)
	if r.LowStock {
		b.WriteString(" Stock is low.")
	}
	if r.ExpiringSoon {
		fmt.Fprintf(&b, " Expires %s.", formatMonth(r.Medicine.ExpiresAt))
	}
	return b.String()
}

func renderUse(name string, r *cabinet.UseResult) string {
	switch r.Outcome {
	case cabinet.OutcomeNotFound:
		return fmt.Sprintf("No medicine matching %q.", name)
	case cabinet.OutcomeAmbiguous:
		return "Which one did you mean?\n" + renderCandidates(r.Candidates)
	}

	m := r.Medicine
	msg := fmt.Sprintf("Used %d %s of %s. Left: %d.", r.Used, m.Unit, m.Name, m.Quantity)
	switch {
	case r.OutOfStock:
		msg += " Out of stock!"
	case r.LowStock:
		msg += " Stock is low."
	}
	return msg
}

func renderSearch(name string, r *cabinet.SearchResult) string {
	if !r.Found() {
		return fmt.Sprintf("No medicine matching %q.", name)
	}
	lines := make([]string, 0, len(r.Matches))
	for _, mt := range r.Matches {
		lines = append(lines, renderMedicine(mt.Medicine))
	}
	return strings.Join(lines, "\n")
}

func renderList(r *cabinet.ListResult) string {
	if len(r.Medicines) == 0 {
		return "The cabinet is empty."
	}
	lines := make([]string, 0, len(r.Medicines)+2)
	for _, m := range r.Medicines {
		lines = append(lines, renderMedicine(m))
	}
	if len(r.LowStock) > 0 {
		lines = append(lines, fmt.Sprintf("Low stock: %s", names(r.LowStock)))
	}
	if len(r.Expiring) > 0 {
		lines = append(lines, fmt.Sprintf("Expiring soon: %s", names(r.Expiring)))
	}
	return strings.Join(lines, "\n")
}

func renderDelete(name string, r *cabinet.DeleteResult) string {
	switch r.Outcome {
	case cabinet.OutcomeNotFound:
		return fmt.Sprintf("No medicine matching %q.", name)
	case cabinet.OutcomeAmbiguous:
		return "Which one did you mean?\n" + renderCandidates(r.Candidates)
	}
	return fmt.Sprintf("Deleted %s.", r.Medicine.Name)
}

func renderHistory(name string, r *cabinet.HistoryResult) string {
	switch r.Outcome {
	case cabinet.OutcomeNotFound:
		return fmt.Sprintf("No medicine matching %q.", name)
	case cabinet.OutcomeAmbiguous:
		return "Which one did you mean?\n" + renderCandidates(r.Candidates)
	}
	if len(r.Entries) == 0 {
		return fmt.Sprintf("No activity for %s.", r.Medicine.Name)
	}
	lines := []string{r.Medicine.Name + ":"}
	for _, e := range r.Entries {
		line := fmt.Sprintf("  %s %s by %s", e.CreatedAt.Format(time.DateTime), e.Action, e.UserName)
		if e.QuantityDelta != nil {
			line += fmt.Sprintf(" (%+d)", *e.QuantityDelta)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderStats(s *domain.ActivityStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Last %d days: %d actions", s.WindowDays, s.Total)
	for _, a := range []domain.ActivityAction{domain.ActivityAdded, domain.ActivityUsed, domain.ActivitySearched, domain.ActivityDeleted} {
		if n := s.ByAction[a]; n > 0 {
			fmt.Fprintf(&b, ", %s %d", a, n)
		}
	}
	for i, u := range s.TopUsers {
		fmt.Fprintf(&b, "\n  %d. %s (%d)", i+1, u.UserName, u.Count)
	}
	if len(s.TopMedicines) > 0 {
		b.WriteString("\nMost used:")
		for i, m := range s.TopMedicines {
			fmt.Fprintf(&b, "\n  %d. %s (%d)", i+1, m.Name, m.Count)
		}
	}
	return b.String()
}

func renderAlerts(r *cabinet.AlertsResult) string {
	if r.Empty() {
		return "Nothing to report."
	}
	var lines []string
	if len(r.LowStock) > 0 {
		lines = append(lines, "Low stock: "+names(r.LowStock))
	}
	if len(r.Expiring) > 0 {
		lines = append(lines, "Expiring soon: "+names(r.Expiring))
	}
	return strings.Join(lines, "\n")
}

// presentError maps domain errors to replies. Anything unexpected is
// logged and answered with a generic message.
func presentError(ctx context.Context, log *slog.Logger, err error) string {
	var stockErr *domain.InsufficientStockError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &stockErr):
		return fmt.Sprintf("Only %d left, can't use %d.", stockErr.Available, stockErr.Requested)
	case errors.As(err, &ve):
		return renderValidation(ve)
	case errors.Is(err, domain.ErrForbidden):
		return "Only admins can do that."
	case errors.Is(err, domain.ErrNotFound):
		return "That medicine is gone."
	}

	log.ErrorContext(ctx, "command failed", slog.String("error", err.Error()))
	return "Something went wrong, try again later."
}

func renderValidation(ve *domain.ValidationError) string {
	for _, fe := range ve.Errors {
		switch {
		case fe.Field == "name":
			return "Which medicine?"
		case fe.Field == "quantity" && fe.Message == cabinet.MsgQuantityRequired:
			return "How many? Try e.g. +Napa 10"
		case fe.Field == "quantity" && fe.Message == cabinet.MsgQuantityTooLarge:
			return "That quantity is too large."
		case fe.Field == "quantity":
			return "The quantity must be a positive number."
		}
	}
	return "Please check the command and try again."
}

func renderCandidates(cands []domain.MedicineMatch) string {
	lines := make([]string, 0, len(cands))
	for i, c := range cands {
		lines = append(lines, fmt.Sprintf("  %d. %s (%d)", i+1, c.Medicine.Name, c.Medicine.Quantity))
	}
	return strings.Join(lines, "\n")
}

func renderMedicine(m domain.Medicine) string {
	s := fmt.Sprintf("%s: %d %s", m.Name, m.Quantity, m.Unit)
	if m.ExpiresAt != nil {
		s += ", exp " + formatMonth(m.ExpiresAt)
	}
	if m.Location != nil {
		s += ", " + *m.Location
	}
	return s
}

func formatMonth(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2006")
}

func names(meds []domain.Medicine) string {
	out := make([]string, 0, len(meds))
	for _, m := range meds {
		out = append(out, m.Name)
	}
	return strings.Join(out, ", ")
}
