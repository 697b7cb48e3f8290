// internal/mailbox/imap.go
package mailbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// EmailMessage is a minimal read-only view of one mailbox message.
type EmailMessage struct {
	UID       imap.UID
	MessageID string
	From      string
	Subject   string
	Date      time.Time

	// Snippet is a short plain-text excerpt used by the cheap filter.
	// Body is the full flattened text handed to the classifier.
	Snippet string
	Body    string
}

// ID returns the identifier stored in the processed-id set. The RFC822
// Message-Id is stable across fetches; UIDs are not (they reset when the
// mailbox UIDVALIDITY changes), so they are only a fallback.
func (m EmailMessage) ID() string {
	if m.MessageID != "" {
		return m.MessageID
	}
	return hashString(fmt.Sprintf("from:%s|sub:%s|at:%s", m.From, m.Subject, m.Date.UTC().Format(time.RFC3339)))
}

// Query narrows the mailbox search. Zero times mean unbounded.
type Query struct {
	Since time.Time
	Until time.Time
	Max   int
}

type Client struct {
	c *imapclient.Client
}

func GmailTLSConfig(host string) *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: host,
	}
}

// Dial connects over TLS and logs in.
func Dial(ctx context.Context, addr, username, password string, tlsCfg *tls.Config) (*Client, error) {
	if addr == "" {
		return nil, errors.New("imap addr is required")
	}
	if username == "" || password == "" {
		return nil, errors.New("imap username/password is required")
	}
	if tlsCfg == nil {
		tlsCfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: tlsCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	// Best-effort close on context cancel.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(username, password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}

	return &Client{c: c}, nil
}

// SelectMailbox opens the named mailbox read-only; this pipeline never
// flags or deletes anything.
func (cl *Client) SelectMailbox(name string) error {
	if cl == nil || cl.c == nil {
		return errors.New("imap client is nil")
	}
	if name == "" {
		name = "INBOX"
	}
	_, err := cl.c.Select(name, &imap.SelectOptions{ReadOnly: true}).Wait()
	if err != nil {
		return fmt.Errorf("imap select %q: %w", name, err)
	}
	return nil
}

// Search pulls messages matching q (by UID), newest first, including
// Envelope + full raw RFC822 bytes via BODY.PEEK[] so nothing is marked
// \Seen.
func (cl *Client) Search(ctx context.Context, q Query) ([]EmailMessage, error) {
	if cl == nil || cl.c == nil {
		return nil, errors.New("imap client is nil")
	}
	if q.Max <= 0 {
		q.Max = 500
	}

	criteria := &imap.SearchCriteria{}
	if !q.Since.IsZero() {
		criteria.Since = q.Since
	}
	if !q.Until.IsZero() {
		// IMAP BEFORE is exclusive on the internal date.
		criteria.Before = q.Until.AddDate(0, 0, 1)
	}

	searchData, err := cl.c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []EmailMessage{}, nil
	}

	// Process newest first
	if len(uids) > 1 {
		for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
			uids[i], uids[j] = uids[j], uids[i]
		}
	}
	if len(uids) > q.Max {
		uids = uids[:q.Max]
	}

	uidSet := imap.UIDSetNum(uids...)

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}

	fetchOptions := &imap.FetchOptions{
		UID:          true,
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodyAll},
	}

	fetchCmd := cl.c.Fetch(uidSet, fetchOptions)
	defer func() { _ = fetchCmd.Close() }()

	out := make([]EmailMessage, 0, len(uids))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}

		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}

		var em EmailMessage
		em.UID = buf.UID

		if buf.Envelope != nil {
			em.Subject = decodeRFC2047(buf.Envelope.Subject)
			em.Date = buf.Envelope.Date
			em.From = joinAddrs(buf.Envelope.From)
		}

		if b := buf.FindBodySection(bodyAll); b != nil {
			fillFromRaw(&em, b)
		}

		out = append(out, em)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}

	return out, nil
}

// Logout logs out then closes the connection.
func (cl *Client) Logout() {
	if cl == nil || cl.c == nil {
		return
	}
	if err := cl.c.Logout().Wait(); err != nil {
		log.Printf("[mailbox] imap logout: %v", err)
	}
	_ = cl.c.Close()
}

func joinAddrs(addrs []imap.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(addrs))
	for i := range addrs {
		a := &addrs[i]
		addr := strings.TrimSpace(a.Addr())
		if addr == "" {
			addr = strings.TrimSpace(a.Name)
		}
		if addr != "" {
			parts = append(parts, addr)
		}
	}
	return strings.Join(parts, ", ")
}
