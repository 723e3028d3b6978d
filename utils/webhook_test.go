package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"festa-pos/dtos"
)

func TestWebhookNotifierSend(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "tok")
	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAuth != "tok" || gotBody["message"] != "hello" {
		t.Fatalf("request auth=%q body=%v", gotAuth, gotBody)
	}
}

func TestWebhookNotifierErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewWebhookNotifier(srv.URL, "").Send(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("Send to failing server err = %v, want status 502", err)
	}
	if err := NewWebhookNotifier("", "").Send(context.Background(), "x"); !errors.Is(err, ErrWebhookDisabled) {
		t.Fatalf("Send without url err = %v, want ErrWebhookDisabled", err)
	}
}

func TestFormatDailyReportMessage(t *testing.T) {
	t.Parallel()
	msg := FormatDailyReportMessage(dtos.DailySummary{
		Date:       "2026-10-19",
		TotalSales: 1750,
		OrderCount: 2,
		Items: []dtos.ItemStat{
			{ProductID: "latte", Name: "抹茶ラテ", Quantity: 2, Amount: 1000},
		},
		CustomTiers: []dtos.CustomTier{{Price: 250, Quantity: 1, Amount: 250}},
	})
	for _, want := range []string{"DAILY SALES 2026-10-19", "Total: ¥1750", "1. 抹茶ラテ x2 (¥1000)", "¥250 x1 (¥250)"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
