package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/mesa-next/internal/config"
	"github.com/mesa-next/internal/i18n"
)

func TestBuildOrderEmailContent(t *testing.T) {
	input := OrderEmailInput{
		OrderID:      17,
		CustomerName: "Ana",
		Phone:        "+34600111222",
		Street:       "Calle Mayor",
		HouseNumber:  "3",
		Location:     "Ardales",
		Total:        "€21.50",
		Details:      "2x Margarita",
	}

	tests := []struct {
		name                string
		build               func(OrderEmailInput, string) (string, string)
		locale              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:                "confirm_es",
			build:               buildOrderConfirmContent,
			locale:              i18n.LocaleES,
			wantSubjectContains: []string{"Pedido #17"},
			wantBodyContains:    []string{"Hola Ana", "€21.50", "2x Margarita"},
		},
		{
			name:                "confirm_en",
			build:               buildOrderConfirmContent,
			locale:              "en-GB",
			wantSubjectContains: []string{"Order #17 received"},
			wantBodyContains:    []string{"Hi Ana", "€21.50"},
		},
		{
			name:                "new_order_es",
			build:               buildNewOrderContent,
			locale:              i18n.LocaleES,
			wantSubjectContains: []string{"Nuevo pedido #17"},
			wantBodyContains:    []string{"+34600111222", "Calle Mayor 3, Ardales"},
		},
		{
			name:                "cancel_en",
			build:               buildOrderCancelContent,
			locale:              i18n.LocaleEN,
			wantSubjectContains: []string{"Order #17 cancelled"},
			wantBodyContains:    []string{"Ana", "€21.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := tt.build(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendEmailGuards(t *testing.T) {
	if err := NewEmailService(&config.EmailConfig{}).SendOrderCancellation("shop@example.com", OrderEmailInput{}, "es"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendOrderCancellation("shop@example.com", OrderEmailInput{}, "es"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}
	svc.SetConfig(&config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"})
	if err := svc.SendOrderConfirmation("not-an-email", OrderEmailInput{}, "es"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email error, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
