package templates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/config"
)

func TestRender_OTPTemplates(t *testing.T) {
	data := map[string]any{
		"UserName":      "ali",
		"Code":          "493817",
		"AppName":       "Campus Social",
		"ExpiresAtText": "01 June 2024, 10:30 UTC",
	}
	for _, name := range []string{VerifyOTP, ResetOTP} {
		t.Run(name, func(t *testing.T) {
			require.True(t, Known(name))
			subject, text, html, err := Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, subject, "Campus Social")
			assert.NotContains(t, subject, "\n")
			assert.Contains(t, text, "493817")
			assert.Contains(t, text, "Hi ali,")
			assert.Contains(t, text, "01 June 2024, 10:30 UTC")
			assert.Contains(t, html, "493817")
		})
	}
	assert.False(t, Known("login_notification"))
}

func TestRender_EscapesHTML(t *testing.T) {
	_, _, html, err := Render(VerifyOTP, map[string]any{"Name": "<b>x</b>", "Code": "1"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
}

func TestFill_KeepsPublisherValues(t *testing.T) {
	cfg := &config.Config{AppName: "Campus Social", CompanyName: "COMSATS"}
	data := Fill(cfg, VerifyOTP, "ali@isbstudent.comsats.edu.pk", map[string]any{"AppName": "Override"}, WithIP("203.0.113.9"))
	assert.Equal(t, "Override", data["AppName"])
	assert.Equal(t, "COMSATS", data["CompanyName"])
	assert.Equal(t, "ali@isbstudent.comsats.edu.pk", data["RecipientEmail"])
	assert.Equal(t, "203.0.113.9", data["IP"])
	assert.NotContains(t, data, "LogoURL")
}

func TestIPAPIResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/json/203.0.113.9" {
			_, _ = w.Write([]byte(`{"status":"success","country":"Pakistan","regionName":"Islamabad","city":"Islamabad","timezone":"Asia/Karachi"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer srv.Close()

	r := NewIPAPIResolver(srv.URL)
	defer func() { _ = r.Close() }()

	g, err := r.Lookup(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Karachi", g.Timezone)
	assert.Equal(t, "Islamabad, Islamabad, Pakistan", FormatGeo(g))

	_, err = r.Lookup(context.Background(), "10.0.0.1")
	assert.ErrorContains(t, err, "reserved range")

	_, err = r.Lookup(context.Background(), " ")
	assert.Error(t, err)
}
