package service

import (
	"context"
	"log"
)

// Mailer delivers account emails. The portal only mocks delivery: the
// message is written to the server log so the verification link can be
// picked up during development.
type Mailer interface {
	SendVerification(ctx context.Context, to, link string) error
}

type logMailer struct{}

func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) SendVerification(ctx context.Context, to, link string) error {
	log.Println("----------------------------------------------------------------")
	log.Println("📧 MOCK EMAIL: Verify your account")
	log.Printf("To: %s", to)
	log.Printf("Link: %s", link)
	log.Println("----------------------------------------------------------------")
	return nil
}
