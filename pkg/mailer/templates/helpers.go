package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/campus-social/config"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option     { return func(d *EmailData) { d.IP = ip } }
func WithCode(code string) Option { return func(d *EmailData) { d.Code = code } }

func setLocation(d *EmailData, loc string) {
	if s := strings.TrimSpace(loc); s != "" {
		d.Location = s
	}
}

func WithLocation(loc string) Option {
	return func(d *EmailData) { setLocation(d, loc) }
}

func WithGeoFromIP(ctx context.Context, r GeoResolver, ip string) Option {
	return func(d *EmailData) {
		if r == nil || strings.TrimSpace(ip) == "" {
			return
		}
		if g, err := r.Lookup(ctx, ip); err == nil {
			setLocation(d, FormatGeo(g))
		}
	}
}

// NewBaseEmailData fills the branding fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, email string, opts ...Option) EmailData {
	d := EmailData{
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		PrivacyURL: cfg.PrivacyURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Fill copies the branding fields into data without overwriting keys the
// publisher already set.
func Fill(cfg *config.Config, typ, to string, data map[string]any, opts ...Option) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	base := NewBaseEmailData(cfg, typ, to, opts...)
	defaults := map[string]string{
		"Email":          base.Email,
		"RecipientEmail": base.RecipientEmail,
		"Type":           base.Type,
		"CompanyName":    base.CompanyName,
		"CompanyAddress": base.CompanyAddress,
		"AppName":        base.AppName,
		"LogoURL":        base.LogoURL,
		"SupportURL":     base.SupportURL,
		"PrivacyURL":     base.PrivacyURL,
		"IP":             base.IP,
		"Location":       base.Location,
		"Code":           base.Code,
	}
	for k, v := range defaults {
		if cur, ok := data[k]; !ok || strings.TrimSpace(fmt.Sprintf("%v", cur)) == "" {
			if v != "" {
				data[k] = v
			}
		}
	}
	return data
}
