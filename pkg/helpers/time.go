package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	mailtpl "github.com/oksasatya/campus-social/pkg/mailer/templates"
)

const expiryLayout = "02 January 2006, 15:04 MST"

// FormatExpiry sets ExpiresAtText from ExpiresAt. The time is shown in the
// timezone of data["IP"] when resolver can locate it, and in UTC otherwise.
func FormatExpiry(ctx context.Context, resolver mailtpl.GeoResolver, data map[string]any) {
	v, ok := data["ExpiresAt"]
	if !ok {
		return
	}
	t, ok := parseTimeAny(v)
	if !ok {
		return
	}
	data["ExpiresAtText"] = t.UTC().Format(expiryLayout)

	ipVal, ok := data["IP"]
	if !ok || resolver == nil || fmt.Sprintf("%v", ipVal) == "" {
		return
	}
	g, err := resolver.Lookup(ctx, fmt.Sprintf("%v", ipVal))
	if err != nil {
		return
	}
	if _, has := data["Location"]; !has {
		if loc := mailtpl.FormatGeo(g); loc != "" {
			data["Location"] = loc
		}
	}
	if strings.TrimSpace(g.Timezone) == "" {
		return
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return
	}
	data["ExpiresAtText"] = t.In(loc).Format(expiryLayout)
}

func parseTimeAny(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	s := fmt.Sprintf("%v", v)
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
