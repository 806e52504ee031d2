package services

import (
	"strings"
	"testing"

	"backend/models"
)

func TestProcessTemplateSubstitution(t *testing.T) {
	es := &EmailService{}
	out := es.processTemplate(
		"Order {{order_number}} cancelled: {{cancel_reason}}",
		models.EmailData{OrderNumber: "ORD-9", CancelReason: "rate too high"},
	)
	if out != "Order ORD-9 cancelled: rate too high" {
		t.Fatalf("unexpected substitution result: %q", out)
	}

	// Unknown placeholders stay put, missing data substitutes empty.
	out = es.processTemplate("{{unknown}} {{user_name}}", models.EmailData{})
	if out != "{{unknown}} " {
		t.Fatalf("unexpected result: %q", out)
	}
}

func TestConvertHTMLToText(t *testing.T) {
	text := convertHTMLToText("<html><body><h1>Welcome</h1><p>Hello <b>there</b></p><ul><li>one</li></ul></body></html>")
	if !strings.Contains(text, "Welcome") || !strings.Contains(text, "Hello there") {
		t.Fatalf("visible text lost: %q", text)
	}
	if strings.Contains(text, "<") {
		t.Fatalf("markup leaked into text: %q", text)
	}
	if !strings.Contains(text, "- one") {
		t.Fatalf("list item not rendered: %q", text)
	}
}
