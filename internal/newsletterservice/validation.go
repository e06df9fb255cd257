package newsletterservice

import (
	"strings"
	"time"

	"github.com/sushihentaime/contenthub/internal/common"
)

func normalizeSubscriber(in *SubscriberInput) {
	in.Email = common.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
}

func validateSubscriber(v *common.Validator, in *SubscriberInput) {
	common.ValidateEmail(v, in.Email)
	v.Check(v.MaxLength(in.Name, 100), "name", "must not be more than 100 characters long")
}

func normalizeDocument(in *DocumentInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Date = strings.TrimSpace(in.Date)
}

func validateDocument(v *common.Validator, in *DocumentInput) {
	v.Check(in.Name != "", "name", "must be provided")
	v.Check(v.MaxLength(in.Name, 255), "name", "must not be more than 255 characters long")

	v.Check(in.Category != "", "category", "must be provided")
	v.Check(v.MaxLength(in.Category, 100), "category", "must not be more than 100 characters long")

	if in.Date == "" {
		v.AddError("date", "must be provided")
		return
	}

	date, ok := parseDate(in.Date)
	v.Check(ok, "date", "must be a date in YYYY-MM-DD format")
	in.date = date
}

func validateFile(v *common.Validator, f File) {
	v.Check(f.Filename != "", "filename", "must be provided")
	v.Check(v.MaxLength(f.Filename, 255), "filename", "must not be more than 255 characters long")
	v.Check(v.MaxLength(f.OriginalName, 255), "original_name", "must not be more than 255 characters long")
}

func validateSend(v *common.Validator, in *SendInput) {
	v.Check(in.Subject != "", "subject", "must be provided")
	v.Check(v.MaxLength(in.Subject, 255), "subject", "must not be more than 255 characters long")
	v.Check(in.Content != "", "content", "must be provided")
	v.Check(v.PermittedValue(in.SendTo, SendToAll, SendToSelected, SendToUnsubscribed), "sendTo", "must be one of all, selected or unsubscribed")

	if in.SendTo == SendToSelected {
		v.Check(len(in.SubscriberIDs) > 0, "subscriberIds", "must contain at least one subscriber")
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns midnight
// UTC of the day as written.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
