package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Receipt holds everything a single payment receipt shows.
type Receipt struct {
	SchoolName  string
	LogoURL     string
	StudentNo   string
	StudentName string
	Department  string
	Course      string
	Reference   string
	PaymentType string
	Amount      float64
	Balance     float64
	ProcessedBy string
	PaidAt      time.Time
}

// EnrollmentForm holds the data printed on a full enrollment form.
type EnrollmentForm struct {
	SchoolName  string
	LogoURL     string
	StudentNo   string
	StudentName string
	Department  string
	Course      string
	YearLevel   string
	Semester    string
	SchoolYear  string
	TotalUnits  int
	Subjects    []EnrollmentFormRow
	PrintedAt   time.Time
}

// EnrollmentFormRow is one course-load line on the enrollment form.
type EnrollmentFormRow struct {
	Code        string
	Description string
	LectureHrs  float64
	LabHrs      float64
	Units       float64
}

// The printed documents are self contained: inline styles only, the logo
// image is the single external reference. The print dialog is triggered
// after a short delay so layout can settle.
var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Official Receipt {{.Reference}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 40px; color: #222;" onload="setTimeout(function(){window.print()}, 500)">
  <div style="text-align: center; margin-bottom: 24px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="logo" style="height: 64px;">{{end}}
    <h2 style="margin: 8px 0 0;">{{.SchoolName}}</h2>
    <p style="margin: 4px 0; font-size: 14px;">OFFICIAL RECEIPT</p>
  </div>
  <table style="width: 100%; font-size: 14px; border-collapse: collapse;">
    <tr><td style="padding: 4px 0;">OR Number:</td><td style="text-align: right;"><strong>{{.Reference}}</strong></td></tr>
    <tr><td style="padding: 4px 0;">Date:</td><td style="text-align: right;">{{.PaidAt.Format "January 2, 2006"}}</td></tr>
    <tr><td style="padding: 4px 0;">Student ID:</td><td style="text-align: right;">{{.StudentNo}}</td></tr>
    <tr><td style="padding: 4px 0;">Student Name:</td><td style="text-align: right;">{{.StudentName}}</td></tr>
    <tr><td style="padding: 4px 0;">Department:</td><td style="text-align: right;">{{.Department}}</td></tr>
    {{if .Course}}<tr><td style="padding: 4px 0;">Course:</td><td style="text-align: right;">{{.Course}}</td></tr>{{end}}
  </table>
  <hr style="margin: 16px 0; border: none; border-top: 1px dashed #888;">
  <table style="width: 100%; font-size: 14px; border-collapse: collapse;">
    <tr><td style="padding: 4px 0;">Payment Type:</td><td style="text-align: right;">{{.PaymentType}}</td></tr>
    <tr><td style="padding: 4px 0;">Amount Paid:</td><td style="text-align: right;"><strong>{{money .Amount}}</strong></td></tr>
    <tr><td style="padding: 4px 0;">Remaining Balance:</td><td style="text-align: right;">{{money .Balance}}</td></tr>
  </table>
  <hr style="margin: 16px 0; border: none; border-top: 1px dashed #888;">
  <p style="font-size: 12px;">Processed by: {{.ProcessedBy}}</p>
  <p style="font-size: 11px; color: #777; text-align: center; margin-top: 32px;">This receipt is system generated.</p>
</body>
</html>
`))

var enrollmentTmpl = template.Must(template.New("enrollment").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Enrollment Form {{.StudentNo}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 40px; color: #222;" onload="setTimeout(function(){window.print()}, 500)">
  <div style="text-align: center; margin-bottom: 24px;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="logo" style="height: 64px;">{{end}}
    <h2 style="margin: 8px 0 0;">{{.SchoolName}}</h2>
    <p style="margin: 4px 0; font-size: 14px;">ENROLLMENT FORM &mdash; {{.Semester}}, SY {{.SchoolYear}}</p>
  </div>
  <table style="width: 100%; font-size: 14px; border-collapse: collapse; margin-bottom: 16px;">
    <tr>
      <td style="padding: 4px 0;">Student ID: <strong>{{.StudentNo}}</strong></td>
      <td style="padding: 4px 0;">Name: <strong>{{.StudentName}}</strong></td>
    </tr>
    <tr>
      <td style="padding: 4px 0;">Department: {{.Department}}</td>
      <td style="padding: 4px 0;">{{if .Course}}Course: {{.Course}} &middot; {{end}}Year Level: {{.YearLevel}}</td>
    </tr>
  </table>
  <table style="width: 100%; font-size: 13px; border-collapse: collapse;" border="1" cellpadding="6">
    <thead>
      <tr style="background: #f0f0f0;">
        <th>Code</th><th>Description</th><th>Lec</th><th>Lab</th><th>Units</th>
      </tr>
    </thead>
    <tbody>
      {{range .Subjects}}
      <tr>
        <td>{{.Code}}</td>
        <td>{{.Description}}</td>
        <td style="text-align: center;">{{.LectureHrs}}</td>
        <td style="text-align: center;">{{.LabHrs}}</td>
        <td style="text-align: center;">{{.Units}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <p style="font-size: 13px; margin-top: 12px;">Total Units: <strong>{{.TotalUnits}}</strong></p>
  <p style="font-size: 11px; color: #777; text-align: center; margin-top: 32px;">Printed {{.PrintedAt.Format "2006-01-02 15:04"}}</p>
</body>
</html>
`))

// RenderReceipt produces the self-contained printable receipt document.
func RenderReceipt(r Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderEnrollmentForm produces the printable enrollment form document.
func RenderEnrollmentForm(f EnrollmentForm) ([]byte, error) {
	var buf bytes.Buffer
	if err := enrollmentTmpl.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("failed to render enrollment form: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return fmt.Sprintf("PHP %.2f", v)
}
