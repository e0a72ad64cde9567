// Package export produces the client-facing artifacts that leave the
// system: CSV downloads and printable receipt/enrollment documents.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Column header sets. The payment headers are fixed by the cashier's
// reporting template and must not be reordered.
var (
	PaymentHeaders = []string{
		"Student ID", "Student Name", "OR Number", "Payment Type",
		"Amount Paid", "Remaining Balance", "Date Paid", "Processed By", "Status",
	}

	UserHeaders = []string{
		"Name", "Email", "Role", "Status", "Permissions",
	}

	SubjectHeaders = []string{
		"Subject ID", "Subject Name", "Course", "Year Level", "Semester", "Status",
	}
)

// CSV renders a header row plus data rows. Every field is wrapped in
// double quotes regardless of content; embedded quotes are doubled.
func CSV(headers []string, rows [][]string) []byte {
	var buf bytes.Buffer
	writeRow(&buf, headers)
	for _, row := range rows {
		writeRow(&buf, row)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// Filename builds a download name with the current date embedded,
// e.g. payment_history_2026-08-28.csv.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}
