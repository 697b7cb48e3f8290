package mailbox

import (
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const snippetChars = 300

// fillFromRaw parses the raw RFC822 bytes into the message's text fields,
// filling any envelope gaps from the headers.
func fillFromRaw(em *EmailMessage, raw []byte) {
	if len(raw) == 0 {
		return
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		// Treat unparseable raw as plaintext best-effort.
		em.Body = strings.TrimSpace(string(raw))
		em.Snippet = clip(em.Body, snippetChars)
		return
	}

	em.MessageID = strings.TrimSpace(msg.Header.Get("Message-Id"))
	if em.MessageID == "" {
		em.MessageID = strings.TrimSpace(msg.Header.Get("Message-ID"))
	}

	if em.Subject == "" {
		em.Subject = decodeRFC2047(msg.Header.Get("Subject"))
	}
	if em.From == "" {
		em.From = decodeRFC2047(msg.Header.Get("From"))
	}
	if em.Date.IsZero() {
		if ds := msg.Header.Get("Date"); ds != "" {
			if t, err := mail.ParseDate(ds); err == nil {
				em.Date = t
			}
		}
	}

	bodyRaw, _ := io.ReadAll(io.LimitReader(msg.Body, 6<<20)) // 6MB cap

	plain, htmlPart := extractMIMETextParts(msg.Header, bodyRaw)

	text := strings.TrimSpace(plain)
	if text == "" && htmlPart != "" {
		text = htmlToText(htmlPart)
	}
	if text == "" {
		text = strings.TrimSpace(string(bodyRaw))
	}

	em.Body = text
	em.Snippet = clip(text, snippetChars)
}

func extractMIMETextParts(h mail.Header, body []byte) (plain, htmlPart string) {
	ct := h.Get("Content-Type")
	cte := strings.ToLower(strings.TrimSpace(h.Get("Content-Transfer-Encoding")))

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		s := decodeTransferEncoding(body, cte)
		return string(s), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			s := decodeTransferEncoding(body, cte)
			return string(s), ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)

		var bestPlain, bestHTML string
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			partCTE := strings.ToLower(strings.TrimSpace(p.Header.Get("Content-Transfer-Encoding")))
			partCT := p.Header.Get("Content-Type")
			pMedia, _, _ := mime.ParseMediaType(partCT)
			pMedia = strings.ToLower(pMedia)

			b, _ := io.ReadAll(io.LimitReader(p, 6<<20))
			b = decodeTransferEncoding(b, partCTE)

			if strings.HasPrefix(pMedia, "multipart/") {
				pl, ht := extractMIMETextParts(mail.Header(p.Header), b)
				if len(pl) > len(bestPlain) {
					bestPlain = pl
				}
				if len(ht) > len(bestHTML) {
					bestHTML = ht
				}
				continue
			}

			switch {
			case strings.HasPrefix(pMedia, "text/plain"):
				if len(b) > len(bestPlain) {
					bestPlain = string(b)
				}
			case strings.HasPrefix(pMedia, "text/html"):
				if len(b) > len(bestHTML) {
					bestHTML = string(b)
				}
			}
		}
		return bestPlain, bestHTML
	}

	s := decodeTransferEncoding(body, cte)
	if strings.HasPrefix(mediaType, "text/html") {
		return "", string(s)
	}
	return string(s), ""
}

func decodeTransferEncoding(b []byte, cte string) []byte {
	switch cte {
	case "base64":
		dec := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	case "quoted-printable":
		dec := quotedprintable.NewReader(bytes.NewReader(b))
		out, _ := io.ReadAll(io.LimitReader(dec, 6<<20))
		return out
	default:
		return b
	}
}

func decodeRFC2047(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	dec := new(mime.WordDecoder)
	out, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return out
}

var reTags = regexp.MustCompile(`(?is)<[^>]+>`)

// htmlToText flattens an HTML body for classification. Script, style and
// hidden markup would only waste classifier tokens, so they go first.
func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// crude fallback: strip tags
		t := reTags.ReplaceAllString(s, " ")
		t = html.UnescapeString(t)
		return strings.Join(strings.Fields(t), " ")
	}
	doc.Find("script, style, head").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func hashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
