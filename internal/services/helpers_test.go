package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"glnc_delivery/internal/testutil"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("smtp: mailbox unavailable")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakePublisher struct {
	events []DeliveryEvent
}

func (p *fakePublisher) Publish(_ context.Context, e DeliveryEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fakeImages struct {
	saved int
}

func (f *fakeImages) Save(encoded string) (string, error) {
	if encoded == "not-base64!" {
		return "", errors.New("illegal base64 data")
	}
	f.saved++
	return "2024/01/10/img.png", nil
}

// fixedClock pins "now" at t.
func fixedClock(t time.Time) Clock {
	return Clock{Loc: testutil.Loc, Now: func() time.Time { return t }}
}

type harness struct {
	db        *gorm.DB
	svc       *Services
	mailer    *fakeMailer
	publisher *fakePublisher
	images    *fakeImages
}

func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()
	h := &harness{
		db:        testutil.NewDB(t),
		mailer:    &fakeMailer{failTo: map[string]bool{}},
		publisher: &fakePublisher{},
		images:    &fakeImages{},
	}
	h.svc = New(Deps{
		DB:            h.db,
		Hasher:        testutil.Hasher(),
		Clock:         fixedClock(now),
		Mailer:        h.mailer,
		Events:        h.publisher,
		Images:        h.images,
		SubjectPrefix: "Livraison",
	})
	return h
}
