package observability

import (
	"encoding/json"
	"testing"
)

func TestSanitizeJSONMasksSensitiveKeys(t *testing.T) {
	in := `{"id":"C-100","password":"secret","nested":{"token":"abc","name":"Ada"}}`
	out := sanitizeJSON([]byte(in))
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("sanitized output not JSON: %v", err)
	}
	if m["password"] != "***" {
		t.Errorf("password not masked: %v", m["password"])
	}
	nested := m["nested"].(map[string]interface{})
	if nested["token"] != "***" {
		t.Errorf("nested token not masked: %v", nested["token"])
	}
	if nested["name"] != "Ada" {
		t.Errorf("plain field altered: %v", nested["name"])
	}
	if m["id"] != "C-100" {
		t.Errorf("id altered: %v", m["id"])
	}
}

func TestSanitizeJSONPassthrough(t *testing.T) {
	if got := sanitizeJSON(nil); got != "" {
		t.Errorf("empty body should yield empty string, got %q", got)
	}
	if got := sanitizeJSON([]byte("not json")); got != "not json" {
		t.Errorf("non-JSON body should pass through, got %q", got)
	}
}

func TestDeriveActionName(t *testing.T) {
	tests := []struct {
		path, method, want string
	}{
		{"/admin/Customer/add", "POST", "post_admin_customer_add"},
		{"/admin/Customer/del", "GET", "get_admin_customer_del"},
		{"", "GET", "GET"},
		{"/", "POST", "POST"},
	}
	for _, tt := range tests {
		if got := deriveActionName(tt.path, tt.method); got != tt.want {
			t.Errorf("deriveActionName(%q,%q)=%q want %q", tt.path, tt.method, got, tt.want)
		}
	}
}
