package model

import "testing"

func TestCustomerZeroValue(t *testing.T) {
	var c Customer
	if c.ID != "" || c.Name != "" || c.Age != "" {
		t.Fatalf("new customer should have empty fields, got %+v", c)
	}
}

func TestCustomerFieldRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		write func(c *Customer, v string)
		read  func(c *Customer) string
	}{
		{"id", func(c *Customer, v string) { c.ID = v }, func(c *Customer) string { return c.ID }},
		{"name", func(c *Customer, v string) { c.Name = v }, func(c *Customer) string { return c.Name }},
		{"age", func(c *Customer, v string) { c.Age = v }, func(c *Customer) string { return c.Age }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Customer
			for _, v := range []string{"C-100", "", "Ada Lovelace", "36"} {
				tt.write(&c, v)
				if got := tt.read(&c); got != v {
					t.Errorf("field %s: wrote %q, read %q", tt.name, v, got)
				}
			}
		})
	}
}

func TestCustomerFieldIndependence(t *testing.T) {
	c := Customer{ID: "C-100", Name: "Ada Lovelace", Age: "36"}
	c.Age = "37"
	if c.ID != "C-100" || c.Name != "Ada Lovelace" {
		t.Fatalf("writing age must not touch other fields: %+v", c)
	}
	if c.Age != "37" {
		t.Fatalf("last write wins, got %q", c.Age)
	}
	c.Name = ""
	if c.ID != "C-100" || c.Age != "37" {
		t.Fatalf("clearing name must not touch other fields: %+v", c)
	}
}
