package templates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"
)

const ipAPIBaseURL = "http://ip-api.com"

// Geo save lookup result
type Geo struct {
	City     string
	Region   string // state/province
	Country  string
	Timezone string
}

type GeoResolver interface {
	Lookup(ctx context.Context, ip string) (Geo, error)
}

func FormatGeo(g Geo) string {
	var parts []string
	if s := strings.TrimSpace(g.City); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(g.Region); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(g.Country); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

type ipAPIResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Timezone   string `json:"timezone"`
}

// IPAPIResolver implements GeoResolver using ip-api.com.
type IPAPIResolver struct {
	client *resty.Client
}

// NewIPAPIResolver returns a resolver against baseURL, or ip-api.com when empty.
func NewIPAPIResolver(baseURL string) *IPAPIResolver {
	if baseURL == "" {
		baseURL = ipAPIBaseURL
	}
	client := resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         time.Second,
		ResponseHeaderTimeout: 2 * time.Second,
	}).SetBaseURL(baseURL).SetTimeout(2 * time.Second)
	return &IPAPIResolver{client: client}
}

func (r *IPAPIResolver) Close() error {
	return r.client.Close()
}

func (r *IPAPIResolver) Lookup(ctx context.Context, ip string) (Geo, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return Geo{}, fmt.Errorf("empty ip")
	}

	res, err := r.client.R().
		WithContext(ctx).
		SetPathParam("ip", ip).
		SetQueryParam("fields", "status,message,country,regionName,city,timezone").
		SetResult(&ipAPIResponse{}).
		Get("/json/{ip}")
	if err != nil {
		return Geo{}, err
	}
	if res.IsError() {
		return Geo{}, fmt.Errorf("geo lookup failed: %s", res.Status())
	}
	body := res.Result().(*ipAPIResponse)
	if strings.ToLower(body.Status) != "success" {
		return Geo{}, fmt.Errorf("geo lookup failed: %s", body.Message)
	}
	return Geo{City: body.City, Region: body.RegionName, Country: body.Country, Timezone: body.Timezone}, nil
}
