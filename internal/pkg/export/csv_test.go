package export

import (
	"strings"
	"testing"
	"time"
)

func TestCSVEveryFieldQuoted(t *testing.T) {
	rows := [][]string{
		{"SPC25-0001", "Ana Reyes", "OR-1001", "Tuition", "5000", "8260", "2025-06-10", "Cashier", "completed"},
	}
	out := string(CSV(PaymentHeaders, rows))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != `"Student ID","Student Name","OR Number","Payment Type","Amount Paid","Remaining Balance","Date Paid","Processed By","Status"` {
		t.Errorf("header row = %s", lines[0])
	}
	for _, field := range strings.Split(lines[1], ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Errorf("field %s is not quote wrapped", field)
		}
	}
}

func TestCSVEscapesEmbeddedQuotes(t *testing.T) {
	out := string(CSV([]string{"Name"}, [][]string{{`Juan "JD" Dela Cruz`}}))
	if !strings.Contains(out, `"Juan ""JD"" Dela Cruz"`) {
		t.Errorf("embedded quotes not doubled: %s", out)
	}
}

func TestFilenameEmbedsDate(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	if got := Filename("payment_history", now); got != "payment_history_2026-08-28.csv" {
		t.Errorf("Filename() = %s", got)
	}
}

func TestRenderReceiptSelfContained(t *testing.T) {
	out, err := RenderReceipt(Receipt{
		SchoolName:  "St. Peter's College",
		LogoURL:     "/assets/logo.png",
		StudentNo:   "SPC25-0001",
		StudentName: "Ana Reyes",
		Department:  "college",
		Reference:   "OR-1001",
		PaymentType: "Tuition",
		Amount:      5000,
		Balance:     8260,
		ProcessedBy: "Cashier",
		PaidAt:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RenderReceipt() error = %v", err)
	}

	doc := string(out)
	for _, want := range []string{"OR-1001", "SPC25-0001", "Ana Reyes", "PHP 5000.00", "window.print"} {
		if !strings.Contains(doc, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
	if strings.Contains(doc, "<link") || strings.Contains(doc, "stylesheet") {
		t.Errorf("receipt must not reference external stylesheets")
	}
}

func TestRenderEnrollmentForm(t *testing.T) {
	out, err := RenderEnrollmentForm(EnrollmentForm{
		SchoolName:  "St. Peter's College",
		StudentNo:   "SPC25-0001",
		StudentName: "Ana Reyes",
		Department:  "college",
		Course:      "BSIT",
		YearLevel:   "1st Year",
		Semester:    "First Semester",
		SchoolYear:  "2025-2026",
		TotalUnits:  24,
		Subjects: []EnrollmentFormRow{
			{Code: "IT101", Description: "Intro to Computing", LectureHrs: 3, Units: 3},
		},
		PrintedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("RenderEnrollmentForm() error = %v", err)
	}
	doc := string(out)
	for _, want := range []string{"ENROLLMENT FORM", "IT101", "BSIT", "Total Units: <strong>24</strong>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("enrollment form missing %q", want)
		}
	}
}
