package mailbox

import (
	"strings"
	"testing"
	"time"
)

func TestFillFromRawPlain(t *testing.T) {
	raw := []byte("Message-Id: <abc@mail.example.com>\r\n" +
		"From: Acme Recruiting <jobs@acme.com>\r\n" +
		"Subject: Thanks for applying\r\n" +
		"Date: Mon, 02 Mar 2026 10:00:00 +0000\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"We received your application for Data Engineer.\r\n")

	var em EmailMessage
	fillFromRaw(&em, raw)

	if em.MessageID != "<abc@mail.example.com>" {
		t.Errorf("MessageID = %q", em.MessageID)
	}
	if em.Subject != "Thanks for applying" {
		t.Errorf("Subject = %q", em.Subject)
	}
	if em.From != "Acme Recruiting <jobs@acme.com>" {
		t.Errorf("From = %q", em.From)
	}
	if em.Date.IsZero() {
		t.Error("Date not parsed from header")
	}
	if !strings.Contains(em.Body, "Data Engineer") {
		t.Errorf("Body = %q", em.Body)
	}
	if em.Snippet == "" {
		t.Error("Snippet empty")
	}
}

func TestFillFromRawMultipartPrefersPlain(t *testing.T) {
	raw := []byte("Message-Id: <mp@mail.example.com>\r\n" +
		"Subject: Interview invitation\r\n" +
		"Content-Type: multipart/alternative; boundary=BOUND\r\n" +
		"\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Plain text version of the invitation.\r\n" +
		"--BOUND\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>HTML version</p></body></html>\r\n" +
		"--BOUND--\r\n")

	var em EmailMessage
	fillFromRaw(&em, raw)

	if !strings.Contains(em.Body, "Plain text version") {
		t.Errorf("Body = %q, want the plain part", em.Body)
	}
	if strings.Contains(em.Body, "<html>") {
		t.Error("raw HTML leaked into Body")
	}
}

func TestFillFromRawHTMLOnly(t *testing.T) {
	raw := []byte("Subject: Offer\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><head><style>p{color:red}</style></head>" +
		"<body><script>alert(1)</script><p>We are pleased to extend an offer.</p></body></html>\r\n")

	var em EmailMessage
	fillFromRaw(&em, raw)

	if !strings.Contains(em.Body, "pleased to extend an offer") {
		t.Errorf("Body = %q", em.Body)
	}
	if strings.Contains(em.Body, "alert(1)") || strings.Contains(em.Body, "color:red") {
		t.Errorf("script/style leaked into Body: %q", em.Body)
	}
}

func TestFillFromRawQuotedPrintable(t *testing.T) {
	raw := []byte("Subject: Status update\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"We=E2=80=99ll be in touch soon.\r\n")

	var em EmailMessage
	fillFromRaw(&em, raw)

	if !strings.Contains(em.Body, "We’ll be in touch") {
		t.Errorf("Body = %q", em.Body)
	}
}

func TestFillFromRawEncodedSubject(t *testing.T) {
	raw := []byte("Subject: =?UTF-8?Q?R=C3=A9ponse_=C3=A0_votre_candidature?=\r\n" +
		"\r\n" +
		"body\r\n")

	var em EmailMessage
	fillFromRaw(&em, raw)

	if em.Subject != "Réponse à votre candidature" {
		t.Errorf("Subject = %q", em.Subject)
	}
}

func TestEmailMessageID(t *testing.T) {
	withID := EmailMessage{MessageID: "<abc@x>", From: "a", Subject: "s"}
	if withID.ID() != "<abc@x>" {
		t.Errorf("ID = %q", withID.ID())
	}

	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a := EmailMessage{From: "jobs@acme.com", Subject: "hi", Date: d}
	b := EmailMessage{From: "jobs@acme.com", Subject: "hi", Date: d}
	if a.ID() != b.ID() {
		t.Error("identical headers must hash to the same fallback id")
	}
	c := EmailMessage{From: "jobs@acme.com", Subject: "other", Date: d}
	if a.ID() == c.ID() {
		t.Error("different subjects must not collide")
	}
}

func TestClip(t *testing.T) {
	if got := clip("  hello  ", 100); got != "hello" {
		t.Errorf("clip = %q", got)
	}
	if got := clip("abcdef", 3); got != "abc" {
		t.Errorf("clip = %q", got)
	}
	if got := clip("abc", 0); got != "abc" {
		t.Errorf("clip with max 0 = %q", got)
	}
}
